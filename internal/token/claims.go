// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package token extracts display claims from bearer tokens.
//
// The decode here is NOT an authorization check. The payload segment of
// the JWT is base64-decoded without any signature verification, and the
// resulting name/email/avatar are used purely to render the signed-in
// user's identity. Every authorization decision belongs to the remote API,
// which validates the token on each authenticated request.
package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/model"
)

// ErrMalformedToken is returned when a token is not a three-segment JWT or
// its payload is not valid base64url JSON.
var ErrMalformedToken = fmt.Errorf("malformed bearer token")

// DecodeDisplayClaims decodes the payload segment of a JWT and returns the
// display claims it carries. The signature is ignored: the result is
// trusted for display only, never for authorization.
func DecodeDisplayClaims(bearer string) (model.DisplayClaims, error) {
	var claims model.DisplayClaims

	parts := strings.Split(bearer, ".")
	if len(parts) != 3 {
		return claims, ErrMalformedToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Some issuers pad their segments; try standard base64url too.
		payload, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return claims, ErrMalformedToken
		}
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, ErrMalformedToken
	}

	return claims, nil
}
