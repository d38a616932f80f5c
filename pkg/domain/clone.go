package domain

// Clone returns a deep copy of the client so callers can hold a snapshot
// while the original keeps changing.
func (c *Client) Clone() *Client {
	if c == nil {
		return nil
	}
	out := *c

	out.Assets = make([]Asset, len(c.Assets))
	for i, a := range c.Assets {
		a.Term = cloneInt(a.Term)
		a.Beneficiaries = append([]AssetBeneficiary(nil), a.Beneficiaries...)
		out.Assets[i] = a
	}

	out.Debts = make([]Debt, len(c.Debts))
	for i, d := range c.Debts {
		d.Term = cloneInt(d.Term)
		out.Debts[i] = d
	}

	out.Businesses = make([]Business, len(c.Businesses))
	for i, b := range c.Businesses {
		b.Term = cloneInt(b.Term)
		b.KeyPeople = append([]KeyPerson(nil), b.KeyPeople...)
		b.Shareholders = append([]Shareholder(nil), b.Shareholders...)
		out.Businesses[i] = b
	}

	out.Beneficiaries = append([]Beneficiary(nil), c.Beneficiaries...)
	out.Goals = append([]Goal(nil), c.Goals...)

	out.Purposes = make([]InsurablePurpose, len(c.Purposes))
	for i, p := range c.Purposes {
		if p.Amount != nil {
			amount := *p.Amount
			p.Amount = &amount
		}
		out.Purposes[i] = p
	}

	if c.Budget != nil {
		budget := *c.Budget
		out.Budget = &budget
	}
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
