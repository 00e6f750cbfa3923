package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP trả về IP của client, dùng làm key cho rate limiting.
//
// trustProxy = false: chỉ dùng RemoteAddr, header X-Forwarded-For / X-Real-IP
// do client gửi lên bị bỏ qua (client có thể giả mạo).
// trustProxy = true (chạy sau reverse proxy):
// 1. X-Forwarded-For (lấy IP đầu tiên)
// 2. X-Real-IP
// 3. RemoteAddr
func ExtractClientIP(c *gin.Context, trustProxy bool) string {
	if trustProxy {
		// Format: "client, proxy1, proxy2"
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
			if isValidIP(clientIP) {
				return clientIP
			}
		}

		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); isValidIP(xri) {
			return xri
		}
	}

	// RemoteAddr format: "IP:port" or "[IPv6]:port"
	remoteAddr := c.Request.RemoteAddr
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}

	if isValidIP(ip) {
		return ip
	}

	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	if ip == "" {
		return false
	}
	return net.ParseIP(ip) != nil
}
