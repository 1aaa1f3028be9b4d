package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository - интерфейс для работы с сообщениями контрактов.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	// GetUserMessages возвращает сообщения контрактов, где пользователь - сторона,
	// по возрастанию времени. contractId может быть пустым.
	GetUserMessages(ctx context.Context, userId, contractId string, limit, offset int) ([]models.Message, error)
}

// PostgresMessageRepository - реализация MessageRepository для базы данных.
type PostgresMessageRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMessageRepository создает новый экземпляр PostgresMessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// CreateMessage сохраняет сообщение.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = uuid.New().String()
	message.Timestamp = time.Now().UTC()

	_, err := conn(ctx, r.DB).Exec(ctx, `
		INSERT INTO message (id, contract_id, sender_id, receiver_id, text, timestamp, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		message.ID,
		message.ContractID,
		message.SenderID,
		message.ReceiverID,
		message.Text,
		message.Timestamp,
		message.IsRead)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetUserMessages возвращает сообщения пользователя.
func (r *PostgresMessageRepository) GetUserMessages(ctx context.Context, userId, contractId string, limit, offset int) ([]models.Message, error) {
	query := `
		SELECT m.id, m.contract_id, m.sender_id, m.receiver_id, m.text, m.timestamp, m.is_read
		FROM message m
		JOIN contract c ON c.id = m.contract_id
		WHERE (c.client_id = $1 OR c.freelancer_id = $1)`
	args := []interface{}{userId}
	if contractId != "" {
		query += ` AND m.contract_id = $2 ORDER BY m.timestamp ASC LIMIT $3 OFFSET $4`
		args = append(args, contractId, limit, offset)
	} else {
		query += ` ORDER BY m.timestamp ASC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := conn(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ContractID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Text,
			&message.Timestamp,
			&message.IsRead); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
