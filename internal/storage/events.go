package storage

import (
	"database/sql"
	"fmt"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/iqbalbaharum/serum-event-tracker/internal/utils"
)

type EventStorage struct {
	client *sql.DB
}

func NewEventStorage(db *sql.DB) *EventStorage {
	return &EventStorage{client: db}
}

// Set routes a decoded event into the fills or outs table by kind.
func (s *EventStorage) Set(event *types.EventEnvelope) error {
	switch event.Kind {
	case types.EventKindFill:
		return s.setFill(event)
	case types.EventKindOut:
		return s.setOut(event)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, event.Kind)
	}
}

func (s *EventStorage) setFill(event *types.EventEnvelope) error {
	query := `
			INSERT INTO fills (market, side, maker, nativeQtyPaid, nativeQtyReceived, nativeFeeOrRebate, feeTier, orderId, owner, ownerSlot, clientOrderId, seqNum, slot)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

	_, err := s.client.Exec(
		query,
		event.Market,
		event.Side,
		event.Maker,
		event.NativeQtyPaid,
		event.NativeQtyReceived,
		event.NativeFeeOrRebate,
		event.FeeTier,
		event.OrderID,
		event.Owner,
		event.OwnerSlot,
		event.ClientOrderID,
		event.SeqNum,
		event.Slot,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", ErrExecuteStatement, err)
	}

	return nil
}

func (s *EventStorage) setOut(event *types.EventEnvelope) error {
	query := `
			INSERT INTO outs (market, side, releaseFunds, nativeQtyUnlocked, nativeQtyStillLocked, orderId, owner, ownerSlot, clientOrderId, seqNum, slot)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

	_, err := s.client.Exec(
		query,
		event.Market,
		event.Side,
		event.ReleaseFunds,
		event.NativeQtyUnlocked,
		event.NativeQtyStillLocked,
		event.OrderID,
		event.Owner,
		event.OwnerSlot,
		event.ClientOrderID,
		event.SeqNum,
		event.Slot,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", ErrExecuteStatement, err)
	}

	return nil
}

// SearchFills queries the fills table with the caller-supplied filter.
func (s *EventStorage) SearchFills(filter types.MySQLFilter) ([]types.EventEnvelope, error) {
	query, values, err := utils.BuildSearchQuery(TABLE_NAME_FILLS, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.client.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var fills []types.EventEnvelope
	for rows.Next() {
		var (
			id        uint64
			maker     int64
			createdAt []byte
		)

		event := types.EventEnvelope{Kind: types.EventKindFill}
		err := rows.Scan(
			&id,
			&event.Market,
			&event.Side,
			&maker,
			&event.NativeQtyPaid,
			&event.NativeQtyReceived,
			&event.NativeFeeOrRebate,
			&event.FeeTier,
			&event.OrderID,
			&event.Owner,
			&event.OwnerSlot,
			&event.ClientOrderID,
			&event.SeqNum,
			&event.Slot,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}

		event.Maker = maker != 0
		fills = append(fills, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrScanData, err)
	}

	return fills, nil
}

// SearchOuts queries the outs table with the caller-supplied filter.
func (s *EventStorage) SearchOuts(filter types.MySQLFilter) ([]types.EventEnvelope, error) {
	query, values, err := utils.BuildSearchQuery(TABLE_NAME_OUTS, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.client.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var outs []types.EventEnvelope
	for rows.Next() {
		var (
			id           uint64
			releaseFunds int64
			createdAt    []byte
		)

		event := types.EventEnvelope{Kind: types.EventKindOut}
		err := rows.Scan(
			&id,
			&event.Market,
			&event.Side,
			&releaseFunds,
			&event.NativeQtyUnlocked,
			&event.NativeQtyStillLocked,
			&event.OrderID,
			&event.Owner,
			&event.OwnerSlot,
			&event.ClientOrderID,
			&event.SeqNum,
			&event.Slot,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}

		event.ReleaseFunds = releaseFunds != 0
		outs = append(outs, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrScanData, err)
	}

	return outs, nil
}
