package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/sliceline/pizzaorders/internal/adapter/config"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
)

type PasetoAccess struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

// New builds the verifier for access tokens issued by the upstream auth
// service. The symmetric key is shared with that service through config;
// without one a random per-process key is generated, which only verifies
// tokens created by this process (local development).
func New(conf *config.Auth) (port.AccessService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf.TokenKey != "" {
		k, err := paseto.V4SymmetricKeyFromHex(conf.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("error parsing access token key: %w", err)
		}
		key = k
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	s := PasetoAccess{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoAccess) CreateToken(payload *port.AccessPayload) (string, error) {
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(1000 * time.Hour))

	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoAccess) VerifyToken(token string) (*port.AccessPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.AccessPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
