package db

import "testing"

func TestUpsertIntegrationPersistsFalseFlags(t *testing.T) {
	setupDB(t)

	if _, err := UpsertIntegration("alice", true, false, nil); err != nil {
		t.Fatalf("UpsertIntegration: %v", err)
	}
	if _, err := UpsertIntegration("bob", false, true, nil); err != nil {
		t.Fatalf("UpsertIntegration: %v", err)
	}

	alice, err := GetIntegration("alice")
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if !alice.Enabled || alice.SyncEnabled {
		t.Errorf("alice = enabled %v, sync %v; want true, false", alice.Enabled, alice.SyncEnabled)
	}

	bob, err := GetIntegration("bob")
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if bob.Enabled || !bob.SyncEnabled {
		t.Errorf("bob = enabled %v, sync %v; want false, true", bob.Enabled, bob.SyncEnabled)
	}

	// Neither is syncable: both flags must be true
	syncable, err := GetSyncableIntegrations()
	if err != nil {
		t.Fatalf("GetSyncableIntegrations: %v", err)
	}
	if len(syncable) != 0 {
		t.Errorf("got %d syncable integrations, want 0", len(syncable))
	}
}

func TestUpsertIntegrationUpdatesExistingRow(t *testing.T) {
	setupDB(t)

	if _, err := UpsertIntegration("alice", true, true, nil); err != nil {
		t.Fatalf("UpsertIntegration: %v", err)
	}
	// Disabling later must stick
	if _, err := UpsertIntegration("alice", true, false, nil); err != nil {
		t.Fatalf("UpsertIntegration: %v", err)
	}

	integration, err := GetIntegration("alice")
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if integration.SyncEnabled {
		t.Error("disabling sync did not persist across the upsert")
	}

	syncable, err := GetSyncableIntegrations()
	if err != nil {
		t.Fatalf("GetSyncableIntegrations: %v", err)
	}
	if len(syncable) != 0 {
		t.Errorf("disabled integration still syncable: %d", len(syncable))
	}
}
