package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"choubo/internal/domain"
	"choubo/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReviewNotification(ctx context.Context, toEmail string, doc *domain.InterpretedDocument) error {
	subject := fmt.Sprintf("【要確認】OCR解析結果の確認依頼 (%s)", doc.DocumentType.JapaneseLabel())
	htmlBody := buildReviewNotificationHTML(doc)
	textBody := fmt.Sprintf(
		"OCR解析がフォールバック処理で完了しました。内容の確認をお願いします。\n\n"+
			"書類ID: %s\n書類種別: %s\n発行元: %s\n宛先: %s\n合計金額: %.0f円\n解析日時: %s\n",
		doc.ID, doc.DocumentType.JapaneseLabel(), doc.VendorName, doc.CustomerName,
		doc.TotalAmount, doc.CreatedAt.Format("2006-01-02 15:04"))

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewNotificationHTML(doc *domain.InterpretedDocument) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">OCR解析結果の確認依頼</h2>
  <p>AIによる解析が失敗し、フォールバック処理で補完されました。内容の確認をお願いします。</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><td style="padding: 6px; border: 1px solid #eee;">書類ID</td><td style="padding: 6px; border: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 6px; border: 1px solid #eee;">書類種別</td><td style="padding: 6px; border: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 6px; border: 1px solid #eee;">発行元</td><td style="padding: 6px; border: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 6px; border: 1px solid #eee;">宛先</td><td style="padding: 6px; border: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 6px; border: 1px solid #eee;">合計金額</td><td style="padding: 6px; border: 1px solid #eee;">%.0f円</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">帳簿 - OCR書類管理</p>
</body>
</html>`, doc.ID, doc.DocumentType.JapaneseLabel(), doc.VendorName, doc.CustomerName, doc.TotalAmount)
}
