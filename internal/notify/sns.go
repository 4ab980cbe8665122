package notify

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	awsclient "franchise-ops/internal/common/aws"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/models"
)

// SNSNotifier publishes every notification as JSON to the toast feed topic.
type SNSNotifier struct {
	client   awsclient.SNSAPI
	topicARN string
}

func NewSNSNotifier(client awsclient.SNSAPI, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (s *SNSNotifier) Notify(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(n.Title),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"level": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(n.Level)),
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	metrics.NotificationsSent.WithLabelValues("sns", string(n.Level)).Inc()
	return nil
}
