package cache

import (
	"context"
	"testing"
	"time"

	"github.com/boa-labs/preapproval/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCache_DisabledWithoutAddress(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	c := New("", 5*time.Minute, log)

	ctx := context.Background()
	pre := &models.PreApproval{UserID: "testuser", Status: "success"}

	// With no Redis configured every write is a no-op and every read a miss.
	c.Set(ctx, "testuser", pre)
	got, ok := c.Get(ctx, "testuser")
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.NoError(t, c.Close())
}
