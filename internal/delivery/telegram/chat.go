package telegram

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

type awaitKind int

const (
	awaitNone awaitKind = iota
	awaitFilter
	awaitField
)

// chat is the console state of one Telegram chat.
type chat struct {
	id int64

	mu          sync.Mutex
	loggedIn    bool
	username    string
	active      string
	await       awaitKind
	awaitScreen string
	awaitField  string

	views     map[string]view
	positions *screen.Positions
}

func (ch *chat) isLoggedIn() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.loggedIn
}

func (ch *chat) setAwait(kind awaitKind, screenName, field string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.await, ch.awaitScreen, ch.awaitField = kind, screenName, field
}

// takeAwait returns and clears what the next text message answers.
func (ch *chat) takeAwait() (awaitKind, string, string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	kind, s, f := ch.await, ch.awaitScreen, ch.awaitField
	ch.await, ch.awaitScreen, ch.awaitField = awaitNone, "", ""
	return kind, s, f
}

// switchTo makes name the active screen, cancelling whatever the previous
// one still had running.
func (ch *chat) switchTo(name string) {
	ch.mu.Lock()
	prev := ch.active
	ch.active = name
	ch.await = awaitNone
	ch.mu.Unlock()
	if prev != "" && prev != name {
		if v, ok := ch.views[prev]; ok {
			v.Leave()
		}
	}
}

func (ch *chat) leaveAll() {
	ch.mu.Lock()
	ch.active = ""
	ch.await = awaitNone
	ch.mu.Unlock()
	for _, v := range ch.views {
		v.Leave()
	}
}

func (ch *chat) positionNames() []string {
	items, err := ch.positions.Rows()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.Name)
	}
	return names
}

func (h *Handler) chatFor(id int64) *chat {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.chats[id]; ok {
		return ch
	}

	log := h.Log.WithField("chat", id)
	positions := screen.NewPositions(h.Positions, h.Lang, log)
	employees := screen.NewEmployees(h.Employees, h.Lang, h.now, log)
	ch := &chat{id: id, positions: positions}
	ch.views = map[string]view{
		screen.EmployeesName: newEmployeeView(employees, h.now, ch.positionNames),
		screen.PositionsName: newPositionView(positions),
	}

	if h.Sessions != nil {
		sess, err := h.Sessions.GetSession(h.Ctx, id)
		if err != nil {
			log.WithError(err).Warn("[session] load failed")
		}
		ch.loggedIn, ch.username = sess.LoggedIn, sess.Username
		for name, v := range ch.views {
			h.restoreView(h.Ctx, log, id, name, v)
		}
	}
	h.chats[id] = ch
	return ch
}

func (h *Handler) restoreView(ctx context.Context, log logrus.FieldLogger, chatID int64, name string, v view) {
	saved, ok, err := h.Sessions.GetView(ctx, chatID, name)
	if err != nil || !ok {
		return
	}
	crit, err := listview.ParseCriteria(saved.Sort)
	if err == nil {
		err = v.SetQuery(listview.Query{FilterField: saved.FilterField, FilterText: saved.FilterText, Sort: crit})
	}
	if err != nil {
		log.WithError(err).WithField("screen", name).Warn("[session] discarding saved view")
	}
}

func (h *Handler) saveView(chatID int64, v view) {
	if h.Sessions == nil {
		return
	}
	q := v.Query()
	err := h.Sessions.SaveView(h.Ctx, chatID, domain.View{
		Screen:      v.Name(),
		FilterField: q.FilterField,
		FilterText:  q.FilterText,
		Sort:        q.Sort.String(),
	})
	if err != nil {
		h.Log.WithError(err).WithField("chat", chatID).Warn("[session] save view failed")
	}
}

func (h *Handler) saveSession(ch *chat) {
	if h.Sessions == nil {
		return
	}
	ch.mu.Lock()
	s := domain.Session{ChatID: ch.id, Username: ch.username, LoggedIn: ch.loggedIn}
	ch.mu.Unlock()
	if err := h.Sessions.SaveSession(h.Ctx, s); err != nil {
		h.Log.WithError(err).WithField("chat", ch.id).Warn("[session] save failed")
	}
}

// IsLoggedIn implements middleware.Authenticator.
func (h *Handler) IsLoggedIn(chatID int64) bool {
	return h.chatFor(chatID).isLoggedIn()
}

func splitScreen(payload string) (screenName, rest string) {
	screenName, rest, _ = strings.Cut(payload, "|")
	return screenName, rest
}
