package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/St1cky1/item-service/internal/entity"
	"github.com/St1cky1/item-service/internal/infrastructure/client"
	"github.com/St1cky1/item-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	consumerTag    = "item_audit_worker"
	reconnectDelay = 5 * time.Second
)

// AuditWorker читает сообщения аудита из RabbitMQ и сохраняет их в БД
type AuditWorker struct {
	url       string
	queueName string
	auditRepo repository.IItemAuditRepository
}

func NewAuditWorker(url, queueName string, auditRepo repository.IItemAuditRepository) *AuditWorker {
	return &AuditWorker{
		url:       url,
		queueName: queueName,
		auditRepo: auditRepo,
	}
}

// Start блокируется до отмены ctx, переподключаясь при обрыве соединения
func (w *AuditWorker) Start(ctx context.Context) {
	for {
		err := w.run(ctx)
		if ctx.Err() != nil {
			log.Println("🛑 Audit Worker остановлен")
			return
		}

		log.Printf("❌ Audit Worker ошибка: %v, переподключение через %s...", err, reconnectDelay)
		select {
		case <-ctx.Done():
			log.Println("🛑 Audit Worker остановлен")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *AuditWorker) run(ctx context.Context) error {
	// Отдельное соединение для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareAuditQueue(channel, w.queueName); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		w.queueName, // queue
		consumerTag, // consumer tag
		false,       // auto-ack (false - подтверждаем вручную)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	log.Printf("✅ Audit Worker запущен, очередь %s", w.queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *AuditWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	// 2. Конвертируем в ItemAudit
	itemAudit, err := ConvertToItemAudit(&auditMsg)
	if err != nil {
		log.Printf("❌ Ошибка конвертации: %v", err)
		msg.Nack(false, false)
		return
	}

	// 3. Сохраняем в БД
	if err := w.auditRepo.Create(ctx, itemAudit); err != nil {
		log.Printf("❌ Ошибка сохранения аудита: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Подтверждаем обработку
	msg.Ack(false)
	log.Printf("✅ Аудит сохранен: %s элемент ID=%d", itemAudit.Action, itemAudit.EntityID)
}

func ConvertToItemAudit(msg *entity.AuditMessage) (*entity.ItemAudit, error) {
	oldValues, err := marshalOptional(msg.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := marshalOptional(msg.NewValues)
	if err != nil {
		return nil, err
	}
	changes, err := marshalOptional(msg.Changes)
	if err != nil {
		return nil, err
	}

	return &entity.ItemAudit{
		Source:     msg.Source,
		Action:     msg.Action,
		EntityType: entity.AuditEntityType,
		EntityID:   msg.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    changes,
		ChangesAt:  msg.Timestamp,
	}, nil
}

// marshalOptional: nil map -> NULL в БД
func marshalOptional(values map[string]any) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
