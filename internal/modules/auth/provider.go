package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"urbantide.com/store/internal/database"
)

type Options struct {
	// AdminEmail signs up with role admin; everyone else is a customer.
	AdminEmail string
	SessionTTL time.Duration
	BcryptCost int
}

// Provider owns the session lifecycle: sign up, sign in, restore, sign out.
// State changes are published on the broker.
type Provider struct {
	db     *gorm.DB
	broker *Broker
	opts   Options
	log    *slog.Logger
	now    func() time.Time
}

func NewProvider(db *gorm.DB, broker *Broker, opts Options, l *slog.Logger) *Provider {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if l == nil {
		l = slog.Default()
	}
	return &Provider{db: db, broker: broker, opts: opts, log: l, now: time.Now}
}

func (p *Provider) SessionTTL() time.Duration { return p.opts.SessionTTL }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (p *Provider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)

	var n int64
	if err := p.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return Identity{}, err
	}
	if n > 0 {
		return Identity{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.opts.BcryptCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	role := RoleCustomer
	if p.opts.AdminEmail != "" && email == normalizeEmail(p.opts.AdminEmail) {
		role = RoleAdmin
	}
	now := p.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.db.WithContext(ctx).Create(&u).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return Identity{}, ErrEmailTaken
		}
		return Identity{}, err
	}

	id := u.Identity()
	p.publish(EventSignedUp, id)
	return id, nil
}

// SignIn verifies the password and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Session, Identity, error) {
	var u User
	err := p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, Identity{}, ErrInvalidCredentials
	}

	now := p.now()
	sess := Session{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		ExpiresAt:  now.Add(p.opts.SessionTTL),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := p.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return Session{}, Identity{}, err
	}

	id := u.Identity()
	p.publish(EventSignedIn, id)
	return sess, id, nil
}

// Restore resolves a session cookie to its identity.
func (p *Provider) Restore(ctx context.Context, sessionID string) (Identity, error) {
	if sessionID == "" {
		return Identity{}, ErrSessionNotFound
	}

	now := p.now()
	var sess Session
	err := p.db.WithContext(ctx).Where("id = ? AND expires_at > ?", sessionID, now).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, ErrSessionNotFound
	}
	if err != nil {
		return Identity{}, err
	}

	var u User
	err = p.db.WithContext(ctx).Where("id = ?", sess.UserID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, ErrSessionNotFound
	}
	if err != nil {
		return Identity{}, err
	}

	if err := p.db.WithContext(ctx).Model(&Session{}).Where("id = ?", sess.ID).Update("last_seen_at", now).Error; err != nil {
		p.log.Warn("session touch failed", slog.String("session_id", sess.ID), slog.Any("err", err))
	}
	return u.Identity(), nil
}

// SignOut deletes the session. Signing out an unknown session is a no-op.
func (p *Provider) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	id, restoreErr := p.Restore(ctx, sessionID)

	if err := p.db.WithContext(ctx).Delete(&Session{}, "id = ?", sessionID).Error; err != nil {
		return err
	}
	if restoreErr == nil {
		p.publish(EventSignedOut, id)
	}
	return nil
}

func (p *Provider) publish(kind EventKind, id Identity) {
	if p.broker == nil {
		return
	}
	p.broker.Publish(Event{Kind: kind, Identity: id, At: p.now()})
}
