package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"roleplay/api/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ResetMailSubject = "Roleplay: Recuperação de Senha"
	// ResetChannel is the Redis pub/sub channel carrying ResetNotification payloads.
	ResetChannel = "password_reset_requested"
)

// ResetNotification is everything needed to compose a reset mail.
type ResetNotification struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
	ResetURL string `json:"resetPasswordUrl"`
}

// Link is ResetURL with the token added to its query string.
func (n ResetNotification) Link() string {
	u, err := url.Parse(n.ResetURL)
	if err != nil {
		return n.ResetURL + "?token=" + url.QueryEscape(n.Token)
	}
	q := u.Query()
	q.Set("token", n.Token)
	u.RawQuery = q.Encode()
	return u.String()
}

// ComposeResetMail renders the subject and plain text body of a reset mail.
func ComposeResetMail(n ResetNotification) (subject, body string) {
	body = fmt.Sprintf("Olá, %s.\n\n"+
		"Recebemos uma solicitação para redefinir a sua senha no Roleplay.\n"+
		"Para escolher uma nova senha, acesse o link abaixo (válido por 2 horas):\n\n%s\n\n"+
		"Se você não fez essa solicitação, ignore este e-mail.\n",
		n.Username, n.Link())
	return ResetMailSubject, body
}

// ResetNotifier hands a reset notification off for delivery. Implementations
// must not block on the mail relay.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, n ResetNotification) error
}

type Mailer interface {
	Send(to, subject, body string) error
}

// MailNotifier sends reset mails on background goroutines.
type MailNotifier struct {
	mailer Mailer
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewMailNotifier(mailer Mailer, logger *zap.Logger) *MailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailNotifier{mailer: mailer, logger: logger}
}

func (m *MailNotifier) NotifyPasswordReset(_ context.Context, n ResetNotification) error {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		_ = m.Deliver(n)
	}()
	return nil
}

// Deliver sends the mail synchronously.
func (m *MailNotifier) Deliver(n ResetNotification) error {
	subject, body := ComposeResetMail(n)
	if err := m.mailer.Send(n.Email, subject, body); err != nil {
		metrics.ResetMail("failed")
		m.logger.Warn("reset mail not sent", zap.String("username", n.Username), zap.Error(err))
		return err
	}
	metrics.ResetMail("sent")
	m.logger.Info("reset mail sent", zap.String("username", n.Username))
	return nil
}

// Wait blocks until in-flight deliveries finish.
func (m *MailNotifier) Wait() {
	m.wg.Wait()
}

// ErrNoMailSubscriber is returned when a reset notification reached no
// subscriber and there is no fallback to deliver it.
var ErrNoMailSubscriber = errors.New("no mail subscriber received the reset notification")

// RedisResetPublisher publishes notifications for a MailSubscriber to deliver.
// When no subscriber is listening the notification goes to fallback instead.
type RedisResetPublisher struct {
	rdb      *redis.Client
	channel  string
	fallback ResetNotifier
}

func NewRedisResetPublisher(rdb *redis.Client, fallback ResetNotifier) *RedisResetPublisher {
	return &RedisResetPublisher{rdb: rdb, channel: ResetChannel, fallback: fallback}
}

func (p *RedisResetPublisher) NotifyPasswordReset(ctx context.Context, n ResetNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	receivers, err := p.rdb.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish reset notification: %w", err)
	}
	if receivers > 0 {
		return nil
	}
	if p.fallback == nil {
		return ErrNoMailSubscriber
	}
	metrics.ResetMail("fallback")
	return p.fallback.NotifyPasswordReset(ctx, n)
}
