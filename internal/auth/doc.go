// Package auth provides authentication and authorization for the bookr API.
//
// It supports two modes:
//   - "none": single-user mode, every request acts as the seeded "local" admin
//   - "local": user accounts with bcrypt passwords, session cookies and CSRF
//
// # Configuration
//
//	AUTH_MODE=none|local
//	AUTH_SESSION_SECRET=<hex-32-bytes>   # generated at startup if empty
//	AUTH_SESSION_LIFETIME=24h
//	AUTH_BCRYPT_COST=12
//	AUTH_SECURE_COOKIES=true
//	AUTH_MAX_LOGIN_ATTEMPTS=5
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
//	authService := auth.NewService(users.NewRepository(db), cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager, cfg.Auth)
//	router.Use(authMiddleware.Handler())
//
// Handlers read the acting user with auth.GetUserID(c).
package auth
