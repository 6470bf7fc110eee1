package emailsvc

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
)

type consoleService struct {
	appName          string
	frontendBaseURL  string
	defaultFromEmail mail.Address
	subjPrefix       string
	logger           core.Logger
	std              *log.Logger // nil disables output
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService returns an EmailService printing messages to std (dev mode).
func NewConsoleService(std *log.Logger, logger core.Logger, conf *core.Config) core.EmailService {
	svc := newConsoleService(logger, conf)
	svc.std = std
	return svc
}

func newConsoleService(logger core.Logger, conf *core.Config) *consoleService {
	return &consoleService{
		appName:          conf.AppName,
		frontendBaseURL:  conf.FrontendBaseURL,
		defaultFromEmail: fromAddress(conf.DefaultFromEmail, conf.AppName),
		subjPrefix:       "[" + conf.AppName + "] ",
		logger:           logger,
	}
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc *consoleService) sendMessage(msg *core.EmailMessage) bool {
	if err := msg.Render(svc.appName, svc.frontendBaseURL); err != nil {
		svc.logger.Error(fmt.Sprintf("%+v", errors.Wrap(err, "rendering email")), err)
		return false
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return false
	}
	body := svc.format(*msg)
	if svc.std != nil {
		svc.std.Println(body)
	}
	return true
}

func (svc *consoleService) format(msg core.EmailMessage) string {
	body := new(strings.Builder)

	// Write mail header
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "CC: %s\r\n", joinAddresses(msg.Cc))
	_, _ = fmt.Fprintf(body, "BCC: %s\r\n", joinAddresses(msg.Bcc))

	altW := multipart.NewWriter(body)
	_, _ = fmt.Fprintf(body, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", altW.Boundary())

	if w, err := altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain"}}); err == nil {
		_, _ = fmt.Fprintf(w, "%s\r\n", msg.TextContent)
	}
	if msg.HTMLContent != "" {
		if w, err := altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html"}}); err == nil {
			_, _ = fmt.Fprintf(w, "%s\r\n", msg.HTMLContent)
		}
	}
	_ = altW.Close()
	return body.String()
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

func fromAddress(from, appName string) mail.Address {
	if addr, err := mail.ParseAddress(from); err == nil {
		return *addr
	}
	return mail.Address{Name: appName, Address: from}
}

// ConsoleServiceMock sends synchronously, without output, and keeps the sent messages.
type ConsoleServiceMock struct {
	*consoleService

	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*ConsoleServiceMock)(nil)

func NewConsoleServiceMock(logger core.Logger, conf *core.Config) *ConsoleServiceMock {
	return &ConsoleServiceMock{consoleService: newConsoleService(logger, conf)}
}

func (svc *ConsoleServiceMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		// run synchronously
		if svc.sendMessage(msg) {
			svc.mu.Lock()
			svc.sent = append(svc.sent, *msg)
			svc.mu.Unlock()
		}
	}
}

// SentMessages returns a copy of the messages sent so far.
func (svc *ConsoleServiceMock) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sent...)
}

func (svc *ConsoleServiceMock) Reset() {
	svc.mu.Lock()
	svc.sent = nil
	svc.mu.Unlock()
}
