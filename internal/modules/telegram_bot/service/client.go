package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	healthsvc "yingyang_bot/internal/modules/health/service"
	journal "yingyang_bot/internal/modules/journal/service"
	strategysvc "yingyang_bot/internal/modules/strategy/service"
	"yingyang_bot/internal/runner"
	"yingyang_bot/pkg/logger"
)

type pending struct {
	ch     chan bool
	msgID  int
	prompt string
}

// Telegram — клиент бота. Чат один, из конфига; всё, что бот пишет
// и слушает, ходит только через него.
type Telegram struct {
	bot    *tgbot.BotAPI
	cfg    *config.Config
	chatID int64

	runner *runner.Runner
	store  *journal.Store
	engine strategysvc.Engine
	state  *healthsvc.State

	mu       sync.Mutex
	pendings map[string]*pending
}

func NewTelegram(
	cfg *config.Config,
	r *runner.Runner,
	store *journal.Store,
	engine strategysvc.Engine,
	state *healthsvc.State,
) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:      b,
		cfg:      cfg,
		chatID:   cfg.Telegram.ChatID,
		runner:   r,
		store:    store,
		engine:   engine,
		state:    state,
		pendings: make(map[string]*pending),
	}, nil
}

// Send шлёт Markdown-сообщение в рабочий чат. Ошибку доставки только
// логируем: телеграм не должен ронять торговый цикл.
func (t *Telegram) Send(ctx context.Context, msg string) {
	m := tgbot.NewMessage(t.chatID, msg)
	m.ParseMode = "Markdown"
	if _, err := t.bot.Send(m); err != nil {
		logger.Error("[TG] send failed: %v", err)
	}
}

func (t *Telegram) SendF(ctx context.Context, format string, args ...any) {
	t.Send(ctx, fmt.Sprintf(format, args...))
}

// SendService — сервисные заметки хаба (прогрев, стрим).
func (t *Telegram) SendService(ctx context.Context, format string, args ...any) {
	t.SendF(ctx, format, args...)
}

// SendReport — отчёт планового цикла, построчный формат.
func (t *Telegram) SendReport(ctx context.Context, rep *models.CycleReport) {
	t.Send(ctx, formatCycleReport(rep))
}

// SendStarted и SendStopped — сообщения жизненного цикла процесса.
func (t *Telegram) SendStarted(ctx context.Context) {
	t.Send(ctx, formatStarted(t.cfg, time.Now()))
}

func (t *Telegram) SendStopped(ctx context.Context) {
	t.Send(ctx, formatStopped())
}

func (t *Telegram) editReplyMarkupRemove(msgID int) error {
	rm := tgbot.InlineKeyboardMarkup{InlineKeyboard: [][]tgbot.InlineKeyboardButton{}}
	edit := tgbot.NewEditMessageReplyMarkup(t.chatID, msgID, rm)
	_, err := t.bot.Request(edit)
	return err
}

func (t *Telegram) editText(msgID int, text string) error {
	edit := tgbot.NewEditMessageText(t.chatID, msgID, text)
	_, err := t.bot.Request(edit)
	return err
}

// Confirm — сообщение с кнопками и ожиданием callback.
func (t *Telegram) Confirm(ctx context.Context, prompt string, timeout time.Duration) bool {
	token := fmt.Sprintf("%d", time.Now().UnixNano())
	p := &pending{
		ch:     make(chan bool, 1),
		prompt: prompt,
	}

	t.mu.Lock()
	t.pendings[token] = p
	t.mu.Unlock()

	btnYes := tgbot.NewInlineKeyboardButtonData("✅ Исполнить", "CONF::"+token)
	btnNo := tgbot.NewInlineKeyboardButtonData("❌ Пропустить", "REJ::"+token)
	kb := tgbot.NewInlineKeyboardMarkup(tgbot.NewInlineKeyboardRow(btnYes, btnNo))

	msg := tgbot.NewMessage(t.chatID, prompt)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = kb

	sent, _ := t.bot.Send(msg)
	p.msgID = sent.MessageID

	tmr := time.NewTimer(timeout)
	defer tmr.Stop()

	select {
	case ok := <-p.ch:
		return ok
	case <-tmr.C:
		_ = t.editReplyMarkupRemove(p.msgID)
		_ = t.editText(p.msgID, fmt.Sprintf("%s\n\n⏳ Таймаут", prompt))
		t.mu.Lock()
		delete(t.pendings, token)
		t.mu.Unlock()
		return false
	case <-ctx.Done():
		_ = t.editReplyMarkupRemove(p.msgID)
		_ = t.editText(p.msgID, fmt.Sprintf("%s\n\n⛔️ Отменено", prompt))
		t.mu.Lock()
		delete(t.pendings, token)
		t.mu.Unlock()
		return false
	}
}

// Start крутит цикл обновлений, блокируется до StopReceivingUpdates.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	logger.Info("[TG] update loop started, chat %d", t.chatID)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	logger.Info("[TG] update loop stopped")
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
