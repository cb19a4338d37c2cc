package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue carrying batch-processing tasks
const QueueName = "announcement_batches"

// Publisher publishes background task jobs to RabbitMQ
type Publisher struct {
	conn      *Connection
	queueName string
}

// TaskJob is the queued pointer to one background task
type TaskJob struct {
	TaskID    string `json:"task_id"`
	JobID     string `json:"job_id"`
	BatchSize int    `json:"batch_size"`
}

// NewPublisher creates a new publisher instance
func NewPublisher(conn *Connection, queueName string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}

	if queueName == "" {
		return nil, errors.New("queue name cannot be empty")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	// Declare queue (durable, non-auto-delete, non-exclusive)
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{
		conn:      conn,
		queueName: queueName,
	}, nil
}

// PublishTask publishes a background task job to the queue
func (p *Publisher) PublishTask(taskID, jobID string, batchSize int) error {
	job := TaskJob{
		TaskID:    taskID,
		JobID:     jobID,
		BatchSize: batchSize,
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal task job: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	err = ch.Publish(
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	return nil
}

// Close closes the publisher (no-op, connection managed externally)
func (p *Publisher) Close() error {
	return nil
}
