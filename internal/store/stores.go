package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/opencrew/orgcli/internal/models"
)

// Store keys. One key per store; every write fully replaces prior content.
const (
	keyCredential  = "session_credentials"
	keySession     = "user_session"
	keyOrgContext  = "selected_organization"
	keyTimeouts    = "timeouts"
	keyClientIdent = "client_identifier"
)

// Timeout store entries, keyed by the mail-sending operation they throttle.
const (
	TimeoutSendConfirmationMail = "send_primary_email_confirmation_mail"
	TimeoutSendEmailChangeMail  = "send_primary_email_change_mail"
)

// Stores bundles the typed stores over a single transactional KV so related
// writes can be committed atomically.
type Stores struct {
	Credential CredentialStore
	Session    SessionStore
	OrgContext OrgContextStore
	Timeouts   TimeoutStore
	Device     DeviceStore

	kv TxKV
}

func NewStores(kv TxKV) *Stores {
	return &Stores{
		Credential: CredentialStore{kv: kv},
		Session:    SessionStore{kv: kv},
		OrgContext: OrgContextStore{kv: kv},
		Timeouts:   TimeoutStore{kv: kv},
		Device:     DeviceStore{kv: kv},
		kv:         kv,
	}
}

// CommitResolution persists a successful organization resolution: the new
// credential, the refreshed user session and the organization context, in one
// all-or-nothing unit. On error none of the three stores is touched.
func (s *Stores) CommitResolution(ctx context.Context, token string, us *models.UserSession, octx *models.OrganizationContext) error {
	return s.kv.Update(ctx, func(ctx context.Context, kv KV) error {
		if err := (CredentialStore{kv: kv}).Store(ctx, token); err != nil {
			return err
		}
		if err := (SessionStore{kv: kv}).Store(ctx, us); err != nil {
			return err
		}
		return OrgContextStore{kv: kv}.Store(ctx, octx)
	})
}

// ClearAuthentication removes the credential, session and organization
// context together (logout).
func (s *Stores) ClearAuthentication(ctx context.Context) error {
	return s.kv.Update(ctx, func(ctx context.Context, kv KV) error {
		for _, key := range []string{keyCredential, keySession, keyOrgContext} {
			if err := kv.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// CredentialStore persists the opaque bearer token.
type CredentialStore struct {
	kv KV
}

// Get returns the stored token, empty when absent.
func (s CredentialStore) Get(ctx context.Context) (string, error) {
	value, err := s.kv.Get(ctx, keyCredential)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s CredentialStore) Store(ctx context.Context, token string) error {
	return s.kv.Set(ctx, keyCredential, []byte(token))
}

func (s CredentialStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keyCredential)
}

// SessionStore persists the authenticated identity and its session roles.
type SessionStore struct {
	kv KV
}

// Get returns the stored session, nil when absent. A value that no longer
// unmarshals is treated as absent; the next successful login overwrites it.
func (s SessionStore) Get(ctx context.Context) (*models.UserSession, error) {
	value, err := s.kv.Get(ctx, keySession)
	if err != nil || value == nil {
		return nil, err
	}
	var us models.UserSession
	if err := json.Unmarshal(value, &us); err != nil {
		return nil, nil
	}
	return &us, nil
}

func (s SessionStore) Store(ctx context.Context, us *models.UserSession) error {
	value, err := json.Marshal(us)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keySession, value)
}

func (s SessionStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keySession)
}

// OrgContextStore persists the selected organization plus the caller's
// membership within it.
type OrgContextStore struct {
	kv KV
}

// Get returns the stored context, nil when absent or unreadable.
func (s OrgContextStore) Get(ctx context.Context) (*models.OrganizationContext, error) {
	value, err := s.kv.Get(ctx, keyOrgContext)
	if err != nil || value == nil {
		return nil, err
	}
	var octx models.OrganizationContext
	if err := json.Unmarshal(value, &octx); err != nil {
		return nil, nil
	}
	return &octx, nil
}

func (s OrgContextStore) Store(ctx context.Context, octx *models.OrganizationContext) error {
	value, err := json.Marshal(octx)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyOrgContext, value)
}

func (s OrgContextStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keyOrgContext)
}

// Timeouts maps a mail-sending operation to the time before which it must not
// be retried.
type Timeouts map[string]time.Time

// TimeoutStore persists resend cooldowns. Unlike the other stores, Put merges
// by key instead of replacing the whole map.
type TimeoutStore struct {
	kv KV
}

func (s TimeoutStore) Get(ctx context.Context) (Timeouts, error) {
	value, err := s.kv.Get(ctx, keyTimeouts)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return Timeouts{}, nil
	}
	var t Timeouts
	if err := json.Unmarshal(value, &t); err != nil {
		return Timeouts{}, nil
	}
	return t, nil
}

func (s TimeoutStore) Put(ctx context.Context, key string, deadline time.Time) error {
	t, err := s.Get(ctx)
	if err != nil {
		return err
	}
	t[key] = deadline
	value, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyTimeouts, value)
}

// Active returns the pending deadline for key, or false when the cooldown
// already elapsed (or none was recorded).
func (s TimeoutStore) Active(ctx context.Context, key string, now time.Time) (time.Time, bool, error) {
	t, err := s.Get(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	deadline, ok := t[key]
	if !ok || !deadline.After(now) {
		return time.Time{}, false, nil
	}
	return deadline, true, nil
}

func (s TimeoutStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keyTimeouts)
}

// DeviceStore persists the random identifier naming this install to the
// backend. It is generated once and survives logouts.
type DeviceStore struct {
	kv KV
}

// ClientIdentifier returns the stored identifier, creating and persisting a
// new one on first use.
func (s DeviceStore) ClientIdentifier(ctx context.Context) (string, error) {
	value, err := s.kv.Get(ctx, keyClientIdent)
	if err != nil {
		return "", err
	}
	if len(value) > 0 {
		return string(value), nil
	}
	id := uuid.NewString()
	if err := s.kv.Set(ctx, keyClientIdent, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}
