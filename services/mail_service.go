package services

import (
	"fmt"
	"strings"

	"returns-app/config"
	"returns-app/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// MailService emails NCR reports to the quality distribution list.
type MailService struct {
	log *logrus.Entry
}

func NewMailService() *MailService {
	return &MailService{log: logrus.WithField("service", "mail")}
}

// SendNCRReport sends the report and its item lines to NCR_MAIL_TO. Unlike
// the Telegram sink this is a user-requested action, so failures are
// returned to the caller.
func (s *MailService) SendNCRReport(report models.NCRReport, items []models.ReturnRecord) error {
	if config.SMTPHost == "" || config.SMTPSender == "" {
		return fmt.Errorf("smtp is not configured")
	}
	if len(config.NCRMailTo) == 0 {
		return fmt.Errorf("NCR_MAIL_TO is empty")
	}

	subject := "⚠️ NCR " + report.NcrNo + " - รายงานสินค้าไม่เป็นไปตามข้อกำหนด"

	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%d %s</td><td>%s</td><td>%s</td></tr>",
			item.RecordNo, item.ProductName, item.Quantity, item.Unit, item.Branch, item.CustomerName))
	}

	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>NCR Report %s</h3>
				<p><strong>วันที่:</strong> %s</p>
				<p><strong>ถึงแผนก:</strong> %s</p>
				<p><strong>ผู้พบปัญหา:</strong> %s</p>
				<p><strong>รายละเอียดปัญหา:</strong> %s</p>
				<table border="1" cellpadding="4" cellspacing="0">
					<tr><th>เลขที่รายการ</th><th>สินค้า</th><th>จำนวน</th><th>สาขา</th><th>ลูกค้า</th></tr>
					%s
				</table>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, report.NcrNo, report.Date, report.ToDept, report.Founder, report.ProblemDetail, rows.String())

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.NCRMailTo...)
	if report.CopyTo != "" {
		msg.SetHeader("Cc", report.CopyTo)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		s.log.WithError(err).WithField("ncr_no", report.NcrNo).Error("failed to send NCR mail")
		return err
	}

	s.log.WithField("ncr_no", report.NcrNo).Info("NCR mail sent")
	return nil
}
