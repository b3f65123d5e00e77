package directoryRepo

import (
	"context"
	"sync"

	"laborlink/models"
	"laborlink/utils"
)

// MemoryDirectory is an in-process Directory.
type MemoryDirectory struct {
	mu        sync.RWMutex
	labors    map[string]models.Labor
	customers map[string]models.Customer
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		labors:    make(map[string]models.Labor),
		customers: make(map[string]models.Customer),
	}
}

func (d *MemoryDirectory) PutLabor(l models.Labor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.labors[l.ID] = l
}

func (d *MemoryDirectory) PutCustomer(c models.Customer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers[c.ID] = c
}

func (d *MemoryDirectory) FindLaborByID(_ context.Context, id string) (*models.Labor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	l, ok := d.labors[id]
	if !ok {
		return nil, utils.NewNotFound("Labor not found")
	}
	return &l, nil
}

func (d *MemoryDirectory) FindCustomerByID(_ context.Context, id string) (*models.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.customers[id]
	if !ok {
		return nil, utils.NewNotFound("Customer not found")
	}
	return &c, nil
}
