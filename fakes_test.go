package accounts

import (
	"context"

	"github.com/lambdahouse/accounts/internal/directory"
	"github.com/lambdahouse/accounts/internal/mailer"
	"github.com/lambdahouse/accounts/internal/store"
)

type fakeDirectory struct {
	groups map[string]map[string]bool // identity -> group set

	addErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{groups: map[string]map[string]bool{}}
}

func (f *fakeDirectory) AddToGroup(_ context.Context, identityID, group string) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.groups[identityID] == nil {
		f.groups[identityID] = map[string]bool{}
	}
	f.groups[identityID][group] = true
	return nil
}

func (f *fakeDirectory) RemoveFromGroup(_ context.Context, identityID, group string) error {
	if !f.groups[identityID][group] {
		return directory.ErrNotMember
	}
	delete(f.groups[identityID], group)
	return nil
}

type fakeStore struct {
	records map[string]store.UserRecord // by user id

	createErr    error
	setTierCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]store.UserRecord{}}
}

func (f *fakeStore) Create(_ context.Context, rec store.UserRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.records[rec.UserID]; ok {
		return store.ErrAlreadyExists
	}
	f.records[rec.UserID] = rec
	return nil
}

func (f *fakeStore) FindByIdentity(_ context.Context, identityID string) (store.UserRecord, error) {
	for _, rec := range f.records {
		if rec.IdentityID == identityID {
			return rec, nil
		}
	}
	return store.UserRecord{}, store.ErrNotFound
}

func (f *fakeStore) SetTier(_ context.Context, userID, tier, updatedAt string) error {
	f.setTierCalls++
	rec, ok := f.records[userID]
	if !ok {
		return store.ErrNotFound
	}
	rec.Tier = tier
	rec.UpdatedAt = updatedAt
	f.records[userID] = rec
	return nil
}

type fakeFiles struct {
	keys []string

	provisionErr error
}

func (f *fakeFiles) ProvisionNamespace(_ context.Context, userID string) error {
	if f.provisionErr != nil {
		return f.provisionErr
	}
	f.keys = append(f.keys, userID+"/")
	return nil
}

type fakeMailer struct {
	sent []mailer.Message

	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}
