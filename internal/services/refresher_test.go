package services

import (
	"testing"

	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/PandeyAnukrati/payment-app/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRefresher_DisabledWithoutInterval(t *testing.T) {
	conf := &structures.Config{}
	notifier := &testutil.MockNotifier{}
	r := NewRefresher(conf, &testutil.MockLogger{}, newTestService(&testutil.MemoryPaymentStore{}, notifier), notifier).(*Refresher)

	r.Init()
	assert.Nil(t, r.cron)

	// Stop must be safe whether or not Init scheduled anything.
	r.Stop()
}
