package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
)

type authRequest struct {
	Password string `json:"password"`
}

// verifyAuth compares the submitted password against the configured site
// secret. Without a configured secret the site is open access, whatever the
// submitted password is.
func (r *V1) verifyAuth(ctx *fiber.Ctx) error {
	if r.password == "" {
		return okResponse(ctx, "no password set, open access", response.Token{Token: "open-access"})
	}

	var req authRequest
	// a malformed body is treated as an empty password
	_ = ctx.BodyParser(&req)

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(r.password)) == 1 {
		return okResponse(ctx, "verified", response.Token{Token: "authorized"})
	}

	return errorResponse(ctx, http.StatusForbidden, 403, "wrong password")
}
