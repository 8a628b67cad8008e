package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TableService tracks the tables hosted by this server and routes
// commands to them. Tables are created once at startup from config;
// lookup is by id or name.
type TableService struct {
	logger *log.Logger
	mu     sync.RWMutex
	tables map[string]*Table
	order  []string
}

// NewTableService constructs an empty table service
func NewTableService(logger *log.Logger) *TableService {
	return &TableService{
		logger: logger.WithPrefix("tables"),
		tables: make(map[string]*Table),
	}
}

// CreateTable creates and registers a table
func (ts *TableService) CreateTable(cfg TableConfig, broadcaster Broadcaster, clock quartz.Clock) *Table {
	table := NewTable(cfg, broadcaster, ts.logger, clock)

	ts.mu.Lock()
	ts.tables[table.ID] = table
	ts.order = append(ts.order, table.ID)
	ts.mu.Unlock()

	ts.logger.Info("table created", "table", table.Name, "id", table.ID)
	return table
}

// GetTable retrieves a table by id or name
func (ts *TableService) GetTable(idOrName string) (*Table, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	if table, ok := ts.tables[idOrName]; ok {
		return table, nil
	}
	for _, table := range ts.tables {
		if table.Name == idOrName {
			return table, nil
		}
	}
	return nil, fmt.Errorf("table not found: %s", idOrName)
}

// ListTables returns a snapshot of available tables
func (ts *TableService) ListTables() []TableSummary {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	summaries := make([]TableSummary, 0, len(ts.order))
	for _, id := range ts.order {
		summaries = append(summaries, ts.tables[id].Summary())
	}
	return summaries
}

// LeaveTable removes a player from a table
func (ts *TableService) LeaveTable(tableID, playerID string) error {
	table, err := ts.GetTable(tableID)
	if err != nil {
		return err
	}
	return table.Leave(playerID)
}
