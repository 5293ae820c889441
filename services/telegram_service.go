package services

import (
	"fmt"
	"strings"
	"time"

	"returns-app/models"
	"returns-app/repositories"
	"returns-app/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TelegramService pushes workflow notifications to a Telegram group chat.
// Delivery is best effort: a failed or disabled send never blocks the
// operation that triggered it, it only leaves a log line.
type TelegramService struct {
	settings *repositories.SettingRepository
	log      *logrus.Entry
	timeout  time.Duration
}

func NewTelegramService(db *gorm.DB) *TelegramService {
	return &TelegramService{
		settings: repositories.NewSettingRepository(db),
		log:      logrus.WithField("service", "telegram"),
		timeout:  10 * time.Second,
	}
}

// Send posts one HTML message to the configured chat. Call it from a
// goroutine; it swallows every failure after logging.
func (s *TelegramService) Send(message string) {
	enabled, botToken, chatId, err := s.settings.TelegramConfig()
	if err != nil {
		s.log.WithError(err).Warn("cannot read notification settings")
		return
	}
	if !enabled {
		return
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken)
	agent := fiber.Post(url)
	agent.Timeout(s.timeout)
	agent.JSON(fiber.Map{
		"chat_id":    chatId,
		"text":       message,
		"parse_mode": "HTML",
	})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		s.log.WithError(errs[0]).Warn("telegram send failed")
		return
	}
	if code != fiber.StatusOK {
		s.log.WithFields(logrus.Fields{"status": code, "body": string(body)}).
			Warn("telegram rejected message")
	}
}

func (s *TelegramService) NotifyReturnRequest(record models.ReturnRecord) {
	s.Send(FormatReturnRequestMessage(record))
}

func (s *TelegramService) NotifyNCR(report models.NCRReport, item models.ReturnRecord) {
	s.Send(FormatNCRMessage(report, item))
}

func (s *TelegramService) NotifyStatusUpdate(label string, record models.ReturnRecord, count int, transport *TransportInfo) {
	s.Send(FormatStatusUpdateMessage(label, record, count, transport))
}

// TransportInfo carries the logistics context lines of a status
// notification. PlateNumber/DriverName are set on dispatch, Received on hub
// receive, Closed on closure.
type TransportInfo struct {
	Destination string
	PlateNumber string
	DriverName  string
	Received    bool
	Closed      bool
}

func orDash(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "-"
}

func stamp() string {
	return time.Now().Format("2/1/2006 15:04:05")
}

// FormatReturnRequestMessage builds the intake announcement.
func FormatReturnRequestMessage(record models.ReturnRecord) string {
	return strings.TrimSpace(fmt.Sprintf(`📦 <b>มีรายการขอคืนสินค้าใหม่ (Step 1)</b>
----------------------------------
<b>เลขที่เอกสาร:</b> %s
<b>สาขา:</b> %s
<b>ลูกค้า:</b> %s
<b>สินค้า:</b> %s
<b>จำนวน:</b> %d %s
<b>ผู้แจ้ง:</b> %s
<b>สาเหตุ:</b> %s
----------------------------------
📅 <i>%s</i>`,
		orDash(record.DocumentNo, record.RefNo),
		record.Branch,
		record.CustomerName,
		record.ProductName,
		record.Quantity, record.Unit,
		orDash(record.Founder),
		orDash(record.Reason),
		stamp()))
}

// FormatNCRMessage builds the new-NCR announcement.
func FormatNCRMessage(report models.NCRReport, item models.ReturnRecord) string {
	return strings.TrimSpace(fmt.Sprintf(`⚠️ <b>มีแจ้งปัญหา NCR ใหม่! [NCR]</b>
----------------------------------
<b>เลขที่ NCR:</b> %s
<b>สินค้า:</b> %s
<b>จำนวน:</b> %d %s
<b>สาขา:</b> %s
<b>ลูกค้า:</b> %s
<b>ผู้พบปัญหา:</b> %s
<b>รายละเอียด:</b> %s
----------------------------------
📅 <i>%s</i>`,
		report.NcrNo,
		item.ProductName,
		item.Quantity, item.Unit,
		item.Branch,
		item.CustomerName,
		orDash(item.Founder),
		orDash(item.ProblemDetail),
		stamp()))
}

// FormatStatusUpdateMessage builds the generic pipeline announcement used by
// dispatch, hub receive and closure.
func FormatStatusUpdateMessage(label string, record models.ReturnRecord, count int, transport *TransportInfo) string {
	isNCR := record.DocumentType == "NCR" || record.NcrNumber != ""
	typeLabel := "COL"
	if isNCR {
		typeLabel = "NCR"
	}

	problem := "-"
	if record.ProblemType != "" {
		problem = workflow.ProblemLabels[record.ProblemType]
		if record.ProblemType == workflow.ProblemOther {
			problem = fmt.Sprintf("อื่นๆ (%s)", record.ProblemOtherText)
		}
	}

	costInfo := "ไม่ระบุ"
	if record.HasCost {
		costInfo = fmt.Sprintf("ใช่ (%.2f บาท, ผู้รับผิดชอบ: %s)", record.CostAmount, record.CostResponsible)
	}

	settlementInfo := "ไม่มี"
	if record.IsFieldSettled {
		settlementInfo = fmt.Sprintf("จบงานหน้างาน (ชดเชย: %.2f บ. โดย: %s [%s])",
			record.FieldSettlementAmount, record.FieldSettlementName, record.FieldSettlementPosition)
	}

	var context string
	if transport != nil {
		switch {
		case transport.PlateNumber != "":
			context = fmt.Sprintf("📍 ต้นทาง: %s\n🏁 ปลายทาง: %s\n🚛 ทะเบียน: %s\n👤 คนขับ: %s\n",
				record.Branch, orDash(transport.Destination), transport.PlateNumber, orDash(transport.DriverName))
		case transport.Received:
			context = fmt.Sprintf("📍 ต้นทาง: %s\n📝 สถานะ: รับเข้าคลังเรียบร้อย\n", record.Branch)
		case transport.Closed:
			context = fmt.Sprintf("📍 สาขา: %s\n📦 รายการ: %s\n🔢 จำนวน: %d %s\n📄 เลขที่: %s\n",
				record.Branch, record.ProductName, record.Quantity, record.Unit,
				orDash(record.DocumentNo, record.RefNo))
		}
	}

	reference := orDash(record.DocumentNo)
	if isNCR {
		reference = orDash(record.NcrNumber)
	}

	quantity := fmt.Sprintf("%d %s", record.Quantity, record.Unit)
	if count > 1 {
		quantity = fmt.Sprintf("%s (รวม %d รายการ)", quantity, count)
	}

	return strings.TrimSpace(fmt.Sprintf(`<b>%s [%s]</b>
%s----------------------------------
<b>เพิ่มเติม %s :</b> %s
<b>วันที่ :</b> %s
<b>สาขา :</b> %s
<b>ผู้พบปัญหา (Founder) :</b> %s
<b>ลูกค้า / ลูกค้าปลายทาง :</b> %s / %s
<b>Neo Ref No. :</b> %s
<b>เลขที่บิล / Ref No. :</b> %s
<b>เลขที่เอกสาร (เลข R) :</b> %s
<b>รายละเอียดของปัญหา :</b> %s
<b>จำนวนสินค้า :</b> %s
<b>วิเคราะห์ปัญหาเกิดจาก :</b> %s
<b>พบปัญหาที่กระบวนการ :</b> %s
<b>การติดตามค่าใช้จ่าย :</b> %s
<b>Field Settlement :</b> %s
----------------------------------
📅 <i>Updated: %s</i>`,
		label, typeLabel,
		context,
		typeLabel, reference,
		orDash(record.Date, record.DateRequested),
		orDash(record.Branch),
		orDash(record.Founder),
		orDash(record.CustomerName), orDash(record.DestinationCustomer),
		orDash(record.NeoRefNo),
		orDash(record.RefNo),
		orDash(record.DocumentNo),
		orDash(record.ProblemDetail, record.Reason),
		quantity,
		orDash(record.ProblemSource),
		problem,
		costInfo,
		settlementInfo,
		stamp()))
}
