package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"clubroster/internal/domain"
)

type contextKey string

const flashKey contextKey = "flash"

// FlashCookie carries notifications across a Post/Redirect/Get round trip.
const FlashCookie = "flash"

type flash struct {
	mu       sync.Mutex
	incoming []domain.Notification
	outgoing []domain.Notification
}

// Flash reads notifications left by the previous response and makes them
// available through Flashes. Notifications sent with FlashNotifier during the
// request are written back as a cookie when the response status is sent, so
// they survive a redirect.
func Flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := &flash{}
		if c, err := r.Cookie(FlashCookie); err == nil {
			f.incoming = decodeFlash(c.Value)
		}
		ctx := context.WithValue(r.Context(), flashKey, f)
		next.ServeHTTP(&flashWriter{ResponseWriter: w, flash: f}, r.WithContext(ctx))
	})
}

// Flashes returns the notifications carried into this request.
func Flashes(ctx context.Context) []domain.Notification {
	f, ok := ctx.Value(flashKey).(*flash)
	if !ok {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Notification(nil), f.incoming...)
}

// FlashNotifier queues notifications on the request's flash. Outside the
// Flash middleware notifications are dropped.
type FlashNotifier struct{}

func (FlashNotifier) Notify(ctx context.Context, n domain.Notification) {
	f, ok := ctx.Value(flashKey).(*flash)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outgoing = append(f.outgoing, n)
}

type flashWriter struct {
	http.ResponseWriter
	flash       *flash
	wroteHeader bool
}

func (w *flashWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeCookie()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *flashWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *flashWriter) writeCookie() {
	w.flash.mu.Lock()
	defer w.flash.mu.Unlock()
	switch {
	case len(w.flash.outgoing) > 0:
		http.SetCookie(w.ResponseWriter, &http.Cookie{
			Name:     FlashCookie,
			Value:    encodeFlash(w.flash.outgoing),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	case len(w.flash.incoming) > 0:
		http.SetCookie(w.ResponseWriter, &http.Cookie{
			Name:     FlashCookie,
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}

func encodeFlash(ns []domain.Notification) string {
	b, err := json.Marshal(ns)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeFlash(s string) []domain.Notification {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	var ns []domain.Notification
	if err := json.Unmarshal(b, &ns); err != nil {
		return nil
	}
	return ns
}
