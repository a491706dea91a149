package service

import (
	"context"
	"testing"
	"time"

	"github.com/Amos-136/maditrack/internal/domain"
	"github.com/Amos-136/maditrack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedPrincipal(t *testing.T, principals *fakePrincipalsRepo, orgs *fakeOrgsRepo) *domain.Principal {
	t.Helper()
	orgID, err := orgs.CreateOrganization(context.Background(), &domain.Organization{
		Name:     "Clinique Santé Plus",
		Category: "clinique",
		Email:    "jean@example.com",
	})
	require.NoError(t, err)

	_, err = principals.CreatePrincipal(context.Background(), &domain.Principal{
		OrgID:          orgID,
		Email:          "jean@example.com",
		PasswordHash:   "hashed:Passw0rd",
		FullName:       "Jean Dupont",
		EmailConfirmed: true,
	})
	require.NoError(t, err)

	p, err := principals.GetPrincipalByEmail(context.Background(), "jean@example.com")
	require.NoError(t, err)
	return p
}

func newTestAuthService(principals *fakePrincipalsRepo, orgs *fakeOrgsRepo, kv store.KV) AuthService {
	return NewAuthService(principals, orgs, &fakeHasher{}, kv, time.Hour, zap.NewNop())
}

func TestAuthService_Login_Success(t *testing.T) {
	orgs := newFakeOrgsRepo()
	principals := newFakePrincipalsRepo()
	p := seedPrincipal(t, principals, orgs)
	kv := newMemKV()
	svc := newTestAuthService(principals, orgs, kv)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " Jean@Example.com ",
		Password: "Passw0rd",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, p.PrincipalID, resp.UserID)
	assert.Equal(t, "jean@example.com", resp.Email)
	assert.Equal(t, "Clinique Santé Plus", resp.OrgName)

	sess, err := svc.ResolveSession(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p.PrincipalID, sess.PrincipalID)
	assert.Equal(t, p.OrgID, sess.OrgID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	orgs := newFakeOrgsRepo()
	principals := newFakePrincipalsRepo()
	seedPrincipal(t, principals, orgs)
	svc := newTestAuthService(principals, orgs, newMemKV())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jean@example.com",
		Password: "WrongPass1",
	})

	require.Error(t, err)
	assert.Equal(t, "identifiants invalides", err.Error())
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	orgs := newFakeOrgsRepo()
	principals := newFakePrincipalsRepo()
	svc := newTestAuthService(principals, orgs, newMemKV())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "Passw0rd",
	})

	require.Error(t, err)
	// Unknown email and wrong password look the same to the caller.
	assert.Equal(t, "identifiants invalides", err.Error())
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newTestAuthService(newFakePrincipalsRepo(), newFakeOrgsRepo(), newMemKV())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "jean@example.com"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Password: "Passw0rd"})
	require.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	orgs := newFakeOrgsRepo()
	principals := newFakePrincipalsRepo()
	seedPrincipal(t, principals, orgs)
	kv := newMemKV()
	svc := newTestAuthService(principals, orgs, kv)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jean@example.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))

	_, err = svc.ResolveSession(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, store.ErrMiss)
}
