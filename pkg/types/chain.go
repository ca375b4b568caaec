package types

// Chain applies a sequence of Add and Remove calls to a Database and stops
// at the first failure. It is the chaining form of Add/Remove:
//
//	err := types.NewChain(db).Add(zsh).Add(grub).Remove(old).Err()
type Chain struct {
	db  Database
	err error
}

// NewChain starts a chain on db.
func NewChain(db Database) *Chain {
	return &Chain{db: db}
}

// Add adds entry unless an earlier step failed.
func (c *Chain) Add(entry *Entry) *Chain {
	if c.err == nil {
		c.err = c.db.Add(entry)
	}
	return c
}

// Remove removes entry unless an earlier step failed.
func (c *Chain) Remove(entry *Entry) *Chain {
	if c.err == nil {
		c.err = c.db.Remove(entry)
	}
	return c
}

// Database returns the database the chain operates on.
func (c *Chain) Database() Database {
	return c.db
}

// Err returns the first error encountered, if any.
func (c *Chain) Err() error {
	return c.err
}
