package sqlite

import (
	"context"
	"testing"
)

func TestConnectRemote_RequiresURL(t *testing.T) {
	if _, err := ConnectRemote(context.Background(), "", "token"); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestOpenRemote_RequiresURL(t *testing.T) {
	if _, err := OpenRemote(context.Background(), "", ""); err == nil {
		t.Error("expected error for empty URL")
	}
}
