package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var ErrInvalidToken = errors.New("invalid device token")

// DeviceTokens issues and verifies the tokens that bind a browser to its
// session slot.
type DeviceTokens struct {
	issuer string
	ttl    time.Duration
	signer Signer
}

func NewDeviceTokens(issuer string, ttl time.Duration, signer Signer) (*DeviceTokens, error) {
	if signer == nil {
		return nil, errors.New("[token.NewDeviceTokens] signer is required")
	}
	if ttl <= 0 {
		return nil, errors.New("[token.NewDeviceTokens] ttl must be positive")
	}
	return &DeviceTokens{issuer: issuer, ttl: ttl, signer: signer}, nil
}

// NewDeviceID returns a fresh random device identifier.
func NewDeviceID() string {
	return uuid.New().String()
}

// Issue signs a token whose subject is deviceID.
func (d *DeviceTokens) Issue(deviceID string) (string, error) {
	now := NowTimeFunc()
	claims := jwt.RegisteredClaims{
		Issuer:    d.issuer,
		Subject:   deviceID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d.ttl)),
		ID:        uuid.New().String(),
	}
	signed, err := d.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[DeviceTokens.Issue]")
	}
	return signed, nil
}

// Parse verifies tokenString and returns its device ID.
func (d *DeviceTokens) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, d.signer.GetVerificationKey,
		jwt.WithIssuer(d.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
		jwt.WithValidMethods([]string{d.signer.GetSigningMethod().Alg()}),
	)
	if err != nil {
		return "", errors.Wrap(ErrInvalidToken, err.Error())
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.Wrap(ErrInvalidToken, "subject is not a device id")
	}
	return claims.Subject, nil
}
