package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const liveWriteTimeout = 5 * time.Second

// liveKeepAlive is how often an open connection marks its session active.
// It must stay well under the session ttl.
var liveKeepAlive = time.Minute

// liveFrame is pushed to the page whenever its view changes.
type liveFrame struct {
	Activities string `json:"activities"`
	Options    string `json:"options"`
	Banner     string `json:"banner"`
}

func frameFor(sess *Session) liveFrame {
	state := sess.State()
	return liveFrame{
		Activities: state.ActivitiesHTML(),
		Options:    state.OptionsHTML(sess.Roster.Form().Activity),
		Banner:     state.BannerHTML(),
	}
}

// Live handles GET /ws
// Streams a fresh rendering of the session's view after every change, so
// banner expiry and re-fetches show up without a reload.
func (h *ShellHandler) Live(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no session")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Warn("websocket accept", "session", sess.ID, "error", err)
		return
	}
	defer conn.CloseNow()

	changed := make(chan struct{}, 1)
	cancel := sess.State().Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	// The page never sends anything; CloseRead handles control frames and
	// cancels ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	// Anything that changed between the page render and Subscribe would
	// otherwise never reach the page.
	if err := h.push(ctx, conn, sess); err != nil {
		h.logger.Debug("websocket push", "session", sess.ID, "error", err)
		return
	}

	keepAlive := time.NewTicker(liveKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-keepAlive.C:
			h.sessions.Touch(sess)
		case <-changed:
			if err := h.push(ctx, conn, sess); err != nil {
				h.logger.Debug("websocket push", "session", sess.ID, "error", err)
				return
			}
		}
	}
}

func (h *ShellHandler) push(ctx context.Context, conn *websocket.Conn, sess *Session) error {
	h.sessions.Touch(sess)

	ctx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, frameFor(sess))
}
