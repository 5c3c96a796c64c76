package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mystocktax/backend/internal/models"
)

// PortfolioService persists holdings and transactions in a single JSON file,
// mirroring the charting frontend's lightweight portfolio tab. Writes go
// through a mutex; this is single-user glue, not a ledger.
type PortfolioService struct {
	mu       sync.Mutex
	filePath string
}

func NewPortfolioService(filePath string) *PortfolioService {
	if filePath == "" {
		filePath = "./data.json"
	}
	return &PortfolioService{filePath: filePath}
}

func (s *PortfolioService) load() (*models.PortfolioData, error) {
	data := &models.PortfolioData{
		Stocks:       []models.PortfolioStock{},
		Transactions: []models.PortfolioTransaction{},
	}

	raw, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}
	if err := json.Unmarshal(raw, data); err != nil {
		// Preserve the unreadable file for manual recovery before starting over.
		backup := filepath.Join(filepath.Dir(s.filePath), fmt.Sprintf("data-corrupt-%s.json", uuid.New().String()[:8]))
		if copyErr := os.WriteFile(backup, raw, 0644); copyErr == nil {
			return nil, fmt.Errorf("portfolio file unreadable (backed up to %s): %w", backup, err)
		}
		return nil, fmt.Errorf("portfolio file unreadable: %w", err)
	}
	return data, nil
}

func (s *PortfolioService) save(data *models.PortfolioData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	return nil
}

// ListStocks returns all holdings.
func (s *PortfolioService) ListStocks() ([]models.PortfolioStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return data.Stocks, nil
}

// AddStock appends a holding with the next sequential id.
func (s *PortfolioService) AddStock(stock models.PortfolioStock) (*models.PortfolioStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	stock.ID = len(data.Stocks) + 1
	stock.AddedDate = time.Now().Format(time.RFC3339)
	data.Stocks = append(data.Stocks, stock)

	if err := s.save(data); err != nil {
		return nil, err
	}
	return &stock, nil
}

// UpdateStock patches an existing holding. Zero-valued fields in the patch
// leave the stored value unchanged.
func (s *PortfolioService) UpdateStock(id int, patch models.PortfolioStock) (*models.PortfolioStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range data.Stocks {
		if data.Stocks[i].ID != id {
			continue
		}
		if patch.Name != "" {
			data.Stocks[i].Name = patch.Name
		}
		if patch.Symbol != "" {
			data.Stocks[i].Symbol = patch.Symbol
		}
		if patch.Quantity != 0 {
			data.Stocks[i].Quantity = patch.Quantity
		}
		if patch.Price != 0 {
			data.Stocks[i].Price = patch.Price
		}
		if err := s.save(data); err != nil {
			return nil, err
		}
		return &data.Stocks[i], nil
	}
	return nil, nil
}

// DeleteStock removes a holding, returning the removed record or nil when
// the id is unknown.
func (s *PortfolioService) DeleteStock(id int) (*models.PortfolioStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range data.Stocks {
		if data.Stocks[i].ID != id {
			continue
		}
		deleted := data.Stocks[i]
		data.Stocks = append(data.Stocks[:i], data.Stocks[i+1:]...)
		if err := s.save(data); err != nil {
			return nil, err
		}
		return &deleted, nil
	}
	return nil, nil
}

// ListTransactions returns every recorded buy/sell.
func (s *PortfolioService) ListTransactions() ([]models.PortfolioTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return data.Transactions, nil
}

// AddTransaction appends a buy or sell record.
func (s *PortfolioService) AddTransaction(tx models.PortfolioTransaction) (*models.PortfolioTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	tx.ID = len(data.Transactions) + 1
	if tx.Date == "" {
		tx.Date = time.Now().Format(time.RFC3339)
	}
	data.Transactions = append(data.Transactions, tx)

	if err := s.save(data); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Summary aggregates current holdings value and realized buy/sell cash flow.
func (s *PortfolioService) Summary() (*models.PortfolioSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{TotalStocks: len(data.Stocks)}
	for _, stock := range data.Stocks {
		summary.TotalValue += float64(stock.Quantity) * stock.Price

		for _, tx := range data.Transactions {
			if tx.StockID != stock.ID {
				continue
			}
			switch tx.Type {
			case "buy":
				summary.TotalProfit -= float64(tx.Quantity) * tx.Price
			case "sell":
				summary.TotalProfit += float64(tx.Quantity) * tx.Price
			}
		}
	}
	return summary, nil
}
