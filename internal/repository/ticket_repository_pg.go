package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixworks/repairdesk/internal/domain"
)

// pgTicketRepository is the durable variant of the ticket store. Id
// allocation rides on BIGSERIAL; append + projection updates run in one
// transaction with the ticket row locked.
type pgTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPgTicketRepository instantiates the postgres-backed repository.
func NewPgTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &pgTicketRepository{pool: pool}
}

func (r *pgTicketRepository) Create(ctx context.Context, ticket *domain.RepairTicket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertTicket = `
        INSERT INTO tickets (customer_name, contact_info, device_brand, device_model, issue_description,
                             created_at, created_by, current_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	if err := tx.QueryRow(ctx, insertTicket,
		ticket.CustomerName,
		ticket.ContactInfo,
		ticket.DeviceBrand,
		ticket.DeviceModel,
		ticket.IssueDescription,
		ticket.CreatedAt,
		string(ticket.CreatedBy),
		ticket.CurrentStatus,
	).Scan(&ticket.ID); err != nil {
		return err
	}

	for _, entry := range ticket.StatusHistory {
		if err := insertLogEntry(ctx, tx, ticket.ID, entry); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *pgTicketRepository) GetByID(ctx context.Context, id uint64) (*domain.RepairTicket, error) {
	const query = `
        SELECT id, customer_name, contact_info, device_brand, device_model, issue_description,
               technician_notes, price_estimate, created_at, created_by, current_status
        FROM tickets WHERE id=$1`
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, int64(id)))
	if err != nil {
		return nil, err
	}
	history, err := r.loadHistory(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.StatusHistory = history
	return ticket, nil
}

func (r *pgTicketRepository) ListByCreator(ctx context.Context, creator domain.Principal) ([]domain.RepairTicket, error) {
	const query = `
        SELECT id, customer_name, contact_info, device_brand, device_model, issue_description,
               technician_notes, price_estimate, created_at, created_by, current_status
        FROM tickets WHERE created_by=$1 ORDER BY id ASC`
	return r.listTickets(ctx, query, string(creator))
}

func (r *pgTicketRepository) ListAll(ctx context.Context) ([]domain.RepairTicket, error) {
	const query = `
        SELECT id, customer_name, contact_info, device_brand, device_model, issue_description,
               technician_notes, price_estimate, created_at, created_by, current_status
        FROM tickets ORDER BY id ASC`
	return r.listTickets(ctx, query)
}

func (r *pgTicketRepository) AppendStatus(ctx context.Context, id uint64, entry domain.StatusLogEntry, price *float64) (*domain.RepairTicket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the ticket row so concurrent appends serialize per ticket.
	const lock = `SELECT id FROM tickets WHERE id=$1 FOR UPDATE`
	var locked int64
	if err := tx.QueryRow(ctx, lock, int64(id)).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := insertLogEntry(ctx, tx, id, entry); err != nil {
		return nil, err
	}

	const update = `
        UPDATE tickets SET current_status=$1,
            technician_notes=COALESCE($2, technician_notes),
            price_estimate=COALESCE($3, price_estimate)
        WHERE id=$4`
	if _, err := tx.Exec(ctx, update, entry.Status, entry.Notes, price, int64(id)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *pgTicketRepository) loadHistory(ctx context.Context, ticketID uint64) ([]domain.StatusLogEntry, error) {
	const query = `
        SELECT status, notes, created_at
        FROM ticket_status_log WHERE ticket_id=$1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, int64(ticketID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.StatusLogEntry
	for rows.Next() {
		var entry domain.StatusLogEntry
		if err := rows.Scan(&entry.Status, &entry.Notes, &entry.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *pgTicketRepository) listTickets(ctx context.Context, query string, args ...any) ([]domain.RepairTicket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.RepairTicket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		history, err := r.loadHistory(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].StatusHistory = history
	}
	return result, nil
}

func insertLogEntry(ctx context.Context, tx pgx.Tx, ticketID uint64, entry domain.StatusLogEntry) error {
	const query = `
        INSERT INTO ticket_status_log (ticket_id, status, notes, created_at)
        VALUES ($1,$2,$3,$4)`
	_, err := tx.Exec(ctx, query, int64(ticketID), entry.Status, entry.Notes, entry.Timestamp)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.RepairTicket, error) {
	var (
		ticket    domain.RepairTicket
		id        int64
		createdBy string
	)
	if err := row.Scan(
		&id,
		&ticket.CustomerName,
		&ticket.ContactInfo,
		&ticket.DeviceBrand,
		&ticket.DeviceModel,
		&ticket.IssueDescription,
		&ticket.TechnicianNotes,
		&ticket.PriceEstimate,
		&ticket.CreatedAt,
		&createdBy,
		&ticket.CurrentStatus,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ticket.ID = uint64(id)
	ticket.CreatedBy = domain.Principal(createdBy)
	return &ticket, nil
}
