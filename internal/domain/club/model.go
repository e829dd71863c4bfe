package club

import "fmt"

// Club is a real-world football club players belong to.
type Club struct {
	ID        string
	LeagueID  string
	Name      string
	ShortName string
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.LeagueID == "" {
		return fmt.Errorf("club league id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}
