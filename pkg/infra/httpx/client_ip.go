package httpx

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WithTrustedProxies makes fiber read the client address from header only
// when the socket peer is one of trusted (IPs or CIDR ranges). With no
// trusted proxies every forwarded header is ignored.
func WithTrustedProxies(cfg fiber.Config, header string, trusted []string) fiber.Config {
	cfg.EnableTrustedProxyCheck = true
	cfg.TrustedProxies = trusted
	cfg.EnableIPValidation = true
	if len(trusted) > 0 {
		cfg.ProxyHeader = header
	} else {
		cfg.ProxyHeader = ""
	}
	return cfg
}

// ClientIP returns the caller address fiber resolved for this request. Apps
// built without WithTrustedProxies get the socket peer.
func ClientIP(ctx *fiber.Ctx) string {
	return strings.TrimSpace(ctx.IP())
}
