package models

// Branch represents an organizational branch that owns items.
type Branch struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	CNPJ    string `json:"cnpj,omitempty"`
}
