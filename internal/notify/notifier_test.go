package notify

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdoutNotifier(t *testing.T) {
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(old)

	n := NewStdout()
	n.Send("hello")
	n.Sendf("signal %s @ %d", "Buy", 71)

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "signal Buy @ 71")
}

// Полупустой телеграм (нет бота или чата) молчит, а не паникует:
// скан работает и без настроенного телеграма.
func TestTelegramSendIsNilSafe(t *testing.T) {
	var tg *Telegram
	assert.NotPanics(t, func() {
		tg.Send("ignored")
		tg.Sendf("ignored %d", 1)
	})

	empty := &Telegram{}
	assert.NotPanics(t, func() { empty.Send("ignored") })
}
