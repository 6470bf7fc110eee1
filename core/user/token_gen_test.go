package user

import (
	"testing"
	"time"
)

func TestMakeVerifyToken(t *testing.T) {
	gen := tokenGenerator{secretKey: []byte("secret")}
	passwordResetTimeoutDelta = 3 * 24 * time.Hour

	now := time.Now()
	usr := User{
		ID:        "5b3c7d1e-9a0f-4c2e-8b7d-1f2e3d4c5b6a",
		Name:      "T",
		Email:     "t@test.test",
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = usr.SetPassword("pwd")

	validToken := gen.makeToken(usr)

	// generate an expired token
	dayLate := passwordResetTimeoutDelta + (24 * time.Hour)
	nowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken := gen.makeToken(usr)
	nowFunc = time.Now // reset

	// a token signed with another key
	foreignToken := tokenGenerator{secretKey: []byte("other")}.makeToken(usr)

	// a token made before the last login
	loggedIn := usr
	loggedIn.LastLogin = now.Add(time.Minute)

	tests := []struct {
		name    string
		usr     User
		token   string
		wantErr error
	}{
		{name: "no token", usr: usr, wantErr: errInvalidToken},
		{name: "invalid parts len", usr: usr, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", usr: usr, token: "hahaha-sigsig", wantErr: errInvalidToken},
		{name: "invalid timestamp", usr: usr, token: "NRXWY-sigsig", wantErr: errInvalidToken},
		{name: "invalid token", usr: usr, token: "HE4TS-sigsig", wantErr: errInvalidToken},
		{name: "foreign key", usr: usr, token: foreignToken, wantErr: errInvalidToken},
		{name: "user logged in since", usr: loggedIn, token: validToken, wantErr: errInvalidToken},
		{name: "expired token", usr: usr, token: expiredToken, wantErr: errTokenExpired},
		{name: "valid token", usr: usr, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := gen.verifyToken(tt.usr, tt.token); err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	usr := User{ID: "5b3c7d1e-9a0f-4c2e-8b7d-1f2e3d4c5b6a"}
	id, err := decodeUID(EncodeUID(usr))
	if err != nil || id != usr.ID {
		t.Errorf("decodeUID(EncodeUID()) = %q, %v; want %q", id, err, usr.ID)
	}
	if _, err := decodeUID("%%%"); err == nil {
		t.Error("decodeUID() expected an error")
	}
}
