// Package sessiontoken issues and verifies signed, time-bound session
// credentials for the portal. Tokens are self-contained HS256 JWTs carrying
// the identity's id, email, display name and role; nothing is persisted
// server-side and there is no revocation list — a logout clears the cookie
// only, and suspension must be enforced by re-checking identity state on
// every privileged operation.
//
// The time source is injected, which keeps expiry behavior deterministic
// under test:
//
//	svc, err := sessiontoken.New(signingKey,
//	    sessiontoken.WithTTL(7*24*time.Hour),
//	    sessiontoken.WithClock(time.Now),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tok, err := svc.Issue(user.ID, user.Email, user.Name, sessiontoken.RoleCustomer)
//	claims, err := svc.Verify(tok)
//
// Verify fails with ErrInvalidSignature, ErrInvalidToken, or ErrExpiredToken;
// the caller treats every failure as anonymous. CookieTransport stores the
// token with httpOnly, sameSite=lax, and a max-age mirroring the token TTL.
package sessiontoken
