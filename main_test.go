package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRunUntilStopped_ServerError(t *testing.T) {
	app := fiber.New()

	// A listen failure must be returned to main rather than killing the
	// process, so deferred cleanup (e.g. the MQ client) still runs.
	serverErr := make(chan error, 1)
	listenErr := errors.New("listen tcp :5000: address already in use")
	serverErr <- listenErr

	quit := make(chan os.Signal, 1)

	err := runUntilStopped(app, serverErr, quit)
	assert.ErrorIs(t, err, listenErr)
}

func TestRunUntilStopped_Signal(t *testing.T) {
	app := fiber.New()

	serverErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	done := make(chan error, 1)
	go func() {
		done <- runUntilStopped(app, serverErr, quit)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete after signal")
	}
}
