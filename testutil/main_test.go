package testutil_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/bizsite/testutil"
)

func TestMain(m *testing.M) {
	_, stop, err := testutil.EnsureDatabase(context.Background())
	if err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	code := m.Run()
	stop()
	os.Exit(code)
}
