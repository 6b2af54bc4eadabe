package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/ChathunKurera/hydratrack/models"
)

var sesClient *ses.Client

func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendWeeklySummaryEmail mails the weekly hydration digest.
func SendWeeklySummaryEmail(to string, insights models.WeeklyInsights, tips []models.InsightTip) error {
	subject := fmt.Sprintf("Your hydration week: %s", insights.WeekLabel())

	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n\n", insights.WeekLabel())
	fmt.Fprintf(&b, "Average intake: %d mL/day\n", insights.AverageIntake)
	fmt.Fprintf(&b, "Total volume: %d mL\n", insights.TotalVolume)
	fmt.Fprintf(&b, "Goal met: %d of %d days (%d%%)\n", insights.DaysGoalMet, insights.DaysElapsed, insights.CompletionRate)
	if insights.BestDay != nil {
		fmt.Fprintf(&b, "Best day: %s with %d mL\n", insights.BestDay.Date.Format("Monday"), insights.BestDay.IntakeMl)
	}
	if len(tips) > 0 {
		b.WriteString("\nTips:\n")
		for _, tip := range tips {
			fmt.Fprintf(&b, "- %s\n", tip.Message)
		}
	}

	return sendEmail(to, subject, b.String())
}
