package gateway

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers credentials. It does not start a session.
func (c *Client) SignUp(ctx context.Context, email, password string, meta Metadata) (*Identity, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if len(password) < minPasswordLength {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	hash, err := hashPassword(password, c.passwordCost)
	if err != nil {
		return nil, authError("signup", err)
	}

	cred := models.Credential{Email: email, PasswordHash: hash, FullName: meta.FullName}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Credential{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(&cred).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrEmailTaken
	}
	if err != nil {
		return nil, authError("signup", err)
	}

	c.log.Info("identity registered", zap.String("user_id", cred.ID))
	return &Identity{UserID: cred.ID, Email: cred.Email}, nil
}

// DeleteIdentity removes a credential and every session issued for it.
func (c *Client) DeleteIdentity(ctx context.Context, userID string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.Credential{}).Error
	})
	if err != nil {
		return authError("delete identity", err)
	}
	return nil
}

// SignIn verifies the credentials, opens a session and stores its token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	var cred models.Credential
	err := c.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authError("signin", ErrInvalidCredentials)
	}
	if err != nil {
		return nil, authError("signin", err)
	}
	if !checkPassword(cred.PasswordHash, password) {
		return nil, authError("signin", ErrInvalidCredentials)
	}

	now := c.now()
	row := models.Session{UserID: cred.ID, ExpiresAt: now.Add(c.signer.TTL())}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, authError("signin", err)
	}

	token, err := c.signer.Issue(row.ID, cred.ID, cred.Email, now, row.ExpiresAt)
	if err != nil {
		return nil, authError("signin", err)
	}
	if err := c.tokens.Save(token); err != nil {
		return nil, authError("signin", err)
	}

	c.log.Info("session opened", zap.String("user_id", cred.ID), zap.String("session_id", row.ID))
	return &Session{ID: row.ID, UserID: cred.ID, Email: cred.Email, ExpiresAt: row.ExpiresAt}, nil
}

// SignOut revokes the stored session and forgets its token. Without a stored
// token it is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		return authError("signout", err)
	}
	if token == "" {
		return nil
	}

	if claims, err := c.signer.Parse(token); err == nil {
		now := c.now()
		err := c.db.WithContext(ctx).Model(&models.Session{}).
			Where("id = ? AND revoked_at IS NULL", claims.ID).
			Update("revoked_at", now).Error
		if err != nil {
			return authError("signout", err)
		}
		c.log.Info("session revoked", zap.String("session_id", claims.ID))
	}

	if err := c.tokens.Clear(); err != nil {
		return authError("signout", err)
	}
	return nil
}

// CurrentSession resolves the stored token. It returns nil without error when
// there is no usable session.
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	token, err := c.tokens.Load()
	if err != nil {
		return nil, authError("session", err)
	}
	if token == "" {
		return nil, nil
	}
	return c.VerifyToken(ctx, token)
}

// VerifyToken resolves token to its session. Malformed, expired and revoked
// tokens yield nil without error.
func (c *Client) VerifyToken(ctx context.Context, token string) (*Session, error) {
	claims, err := c.signer.Parse(token)
	if err != nil {
		c.log.Debug("rejected token", zap.Error(err))
		return nil, nil
	}

	var row models.Session
	err = c.db.WithContext(ctx).Where("id = ?", claims.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, authError("session", err)
	}
	if row.UserID != claims.Subject || !row.Active(c.now()) {
		return nil, nil
	}
	return &Session{ID: row.ID, UserID: row.UserID, Email: claims.Email, ExpiresAt: row.ExpiresAt}, nil
}
