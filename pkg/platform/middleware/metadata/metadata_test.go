package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"custodian/pkg/requestcontext"
)

type MetadataSuite struct {
	suite.Suite
}

func TestMetadataSuite(t *testing.T) {
	suite.Run(t, new(MetadataSuite))
}

func (s *MetadataSuite) TestChannel() {
	s.Run("empty user agent is api", func() {
		s.Equal(ChannelAPI, Channel(""))
	})

	s.Run("non-browser client is api", func() {
		s.Equal(ChannelAPI, Channel("curl/8.4.0"))
	})

	s.Run("chrome on desktop includes browser and OS", func() {
		ch := Channel("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		s.Contains(ch, "Chrome")
		s.Contains(ch, " on ")
		s.NotContains(ch, "  ")
	})

	s.Run("crawler is bot", func() {
		s.Equal(ChannelBot, Channel("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"))
	})
}

func (s *MetadataSuite) TestClientIP() {
	s.Run("first forwarded address wins", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		s.Equal("203.0.113.7", ClientIPFromRequest(r))
	})

	s.Run("real ip header", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Real-IP", " 198.51.100.2 ")
		s.Equal("198.51.100.2", ClientIPFromRequest(r))
	})

	s.Run("remote addr without port", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "[::1]:5555"
		s.Equal("::1", ClientIPFromRequest(r))
	})
}

func (s *MetadataSuite) TestMiddlewareStoresValues() {
	var ip, ua, channel string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
		channel = requestcontext.Channel(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	r.Header.Set("User-Agent", "curl/8.4.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	s.Equal("192.0.2.1", ip)
	s.Equal("curl/8.4.0", ua)
	s.Equal(ChannelAPI, channel)
}
