/*
 Copyright 2026 LoftFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package token

import (
	"context"
	"runtime/trace"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/metastore"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils"
	"github.com/loftfs/loftfs/utils/logger"
)

// Manager issues and verifies user access tokens. Passwords are stored
// bcrypt-hashed, never in the clear.
type Manager struct {
	store         metastore.Meta
	secret        []byte
	tokenDuration time.Duration
	logger        *zap.SugaredLogger
}

func (m *Manager) Register(ctx context.Context, username, password string) (*types.User, error) {
	defer trace.StartRegion(ctx, "token.manager.Register").End()
	if username == "" || password == "" {
		return nil, types.ErrInvalidRequest
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		m.logger.Errorw("hash password failed", "err", err)
		return nil, err
	}

	user := &types.User{
		ID:        utils.GenerateNewID(),
		Username:  username,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if err = m.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *Manager) Login(ctx context.Context, username, password string) (string, *types.User, error) {
	defer trace.StartRegion(ctx, "token.manager.Login").End()
	if username == "" || password == "" {
		return "", nil, types.ErrInvalidRequest
	}

	user, err := m.store.GetUser(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, types.ErrNoAccess
	}

	tokenStr, err := generateJWT(user.ID, user.Username, AccessTokenAudienceName,
		time.Now().Add(m.tokenDuration), m.secret)
	if err != nil {
		m.logger.Errorw("sign access token failed", "user", user.ID, "err", err)
		return "", nil, err
	}
	return tokenStr, user, nil
}

func (m *Manager) Verify(ctx context.Context, accessToken string) (*AuthInfo, error) {
	defer trace.StartRegion(ctx, "token.manager.Verify").End()
	ai, err := authenticateByJWT(accessToken, m.secret)
	if err != nil {
		return nil, types.ErrNoAccess
	}
	return ai, nil
}

func NewTokenManager(store metastore.Meta, cfg config.Auth) *Manager {
	duration := AccessTokenDuration
	if cfg.TokenDuration != "" {
		if parsed, err := time.ParseDuration(cfg.TokenDuration); err == nil {
			duration = parsed
		}
	}
	return &Manager{
		store:         store,
		secret:        []byte(cfg.JWTSecret),
		tokenDuration: duration,
		logger:        logger.NewLogger("tokenManager"),
	}
}
