package service

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yingyang_bot/pkg/logger"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	// 1) Обычные сообщения и команды
	if msg := update.Message; msg != nil {
		if msg.Chat.ID != t.chatID {
			logger.Warn("[TG] сообщение из чужого чата %d, игнорируем", msg.Chat.ID)
			return
		}

		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				t.handleStart(ctx)
			case "status":
				t.handleStatus(ctx)
			case "pause":
				t.handlePause(ctx)
			case "resume":
				t.handleResume(ctx)
			case "scan":
				go t.handleScan(ctx)
			default:
				t.Send(ctx, "Не знаю такую команду. Есть /status, /pause, /resume, /scan.")
			}
			return
		}

		t.handleTextMessage(ctx, msg)
		return
	}

	// 2) Inline-кнопки (CallbackQuery)
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.Message.Chat == nil {
			return
		}
		if cb.Message.Chat.ID != t.chatID {
			return
		}
		t.handleCallback(ctx, cb)
		return
	}
}

func (t *Telegram) handleStart(ctx context.Context) {
	replyKb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("📊 Статус"),
			tgbot.NewKeyboardButton("🔍 Скан"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("⏸ Пауза"),
			tgbot.NewKeyboardButton("▶️ Продолжить"),
		),
	)

	msg := tgbot.NewMessage(t.chatID, formatGreeting(t.cfg))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = replyKb

	if _, err := t.bot.Send(msg); err != nil {
		logger.Error("[TG] start reply failed: %v", err)
	}
}

// Кнопки главной клавиатуры дублируют команды.
func (t *Telegram) handleTextMessage(ctx context.Context, msg *tgbot.Message) {
	switch strings.TrimSpace(msg.Text) {
	case "📊 Статус":
		t.handleStatus(ctx)
	case "🔍 Скан":
		go t.handleScan(ctx)
	case "⏸ Пауза":
		t.handlePause(ctx)
	case "▶️ Продолжить":
		t.handleResume(ctx)
	}
}

func (t *Telegram) handleStatus(ctx context.Context) {
	entries, err := t.store.Last(ctx, t.cfg.Market, 3)
	if err != nil {
		logger.Error("[TG] чтение журнала для статуса: %v", err)
	}
	t.Send(ctx, formatStatus(t.cfg, t.state, t.engine, t.runner.Paused(), entries))
}

func (t *Telegram) handlePause(ctx context.Context) {
	t.runner.Pause()
	logger.Info("[TG] торговля поставлена на паузу")
	t.Send(ctx, "⏸ Пауза: плановые циклы пропускаются до /resume.")
}

func (t *Telegram) handleResume(ctx context.Context) {
	t.runner.Resume()
	logger.Info("[TG] торговля продолжена")
	t.Send(ctx, "▶️ Продолжаем: циклы снова по расписанию.")
}

// handleScan гоняет внеплановый цикл. Вызывается в отдельной
// горутине: цикл долгий, апдейты блокировать нельзя.
func (t *Telegram) handleScan(ctx context.Context) {
	t.Send(ctx, "🔍 Запускаю внеплановый цикл…")
	if err := t.runner.TriggerScan(ctx); err != nil {
		t.SendF(ctx, "⚠️ Скан не запустился: %v", err)
	}
}

func (t *Telegram) handleCallback(ctx context.Context, cb *tgbot.CallbackQuery) {
	// отвечаем ТГ, чтобы убрать "часики" на кнопке
	_, _ = t.bot.Request(tgbot.NewCallback(cb.ID, ""))

	// Подтверждения сделки: CONF::token / REJ::token
	if strings.Contains(cb.Data, "::") {
		t.handleConfirmCallback(cb.Data)
		return
	}
}

// handleConfirmCallback обрабатывает callback-и вида CONF::token / REJ::token.
func (t *Telegram) handleConfirmCallback(data string) {
	verb, token := parseConfirmData(data)
	if verb == "" || token == "" {
		return
	}

	t.mu.Lock()
	p, ok := t.pendings[token]
	t.mu.Unlock()
	if !ok {
		return
	}

	accepted := verb == "CONF"
	p.ch <- accepted
	close(p.ch)

	status := "Отклонено"
	emoji := "❌"
	if accepted {
		status = "Подтверждено"
		emoji = "✅"
	}

	_ = t.editReplyMarkupRemove(p.msgID)
	_ = t.editText(p.msgID, fmt.Sprintf("%s\n\n%s %s", p.prompt, emoji, status))

	t.mu.Lock()
	delete(t.pendings, token)
	t.mu.Unlock()
}

func parseConfirmData(data string) (verb, token string) {
	for i := 0; i < len(data); i++ {
		if i+1 < len(data) && data[i] == ':' && data[i+1] == ':' {
			return data[:i], data[i+2:]
		}
	}
	return "", ""
}
