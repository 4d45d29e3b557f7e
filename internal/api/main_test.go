package api

import (
	"os"
	"testing"

	"github.com/econsult/commentnet-go/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Init()
	os.Exit(m.Run())
}
