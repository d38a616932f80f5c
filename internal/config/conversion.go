package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/normalize"
)

// idNamespace seeds ids derived from names so that the same client file
// always produces the same ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/iwvelando/advisor-forecast"))

// resolveID parses an explicit id or derives one from the parent id, the
// record kind, its position and its name.
func resolveID(field, explicit string, parent uuid.UUID, kind string, index int, name string) (uuid.UUID, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, &normalize.InvalidInputError{Field: field, Value: explicit, Reason: "is not a UUID"}
		}
		return id, nil
	}
	return uuid.NewSHA1(parent, []byte(fmt.Sprintf("%s/%d/%s", kind, index, name))), nil
}

// fieldParser collects the first normalization error so that conversion
// code reads as a flat list of fields.
type fieldParser struct {
	err error
}

func (p *fieldParser) money(field, raw string) float64 {
	return p.float(normalize.NonNegativeMoney, field, raw)
}

func (p *fieldParser) percent(field, raw string) float64 {
	return p.float(normalize.Percent, field, raw)
}

func (p *fieldParser) rate(field, raw string) float64 {
	return p.float(normalize.Rate, field, raw)
}

func (p *fieldParser) parts(field, raw string) float64 {
	return p.float(normalize.Parts, field, raw)
}

func (p *fieldParser) float(fn func(string, string) (float64, error), field, raw string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := fn(field, raw)
	if err != nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) years(field, raw string) int {
	return p.integer(func(field, raw string) (int, error) {
		return normalize.WholeUpTo(field, raw, constants.MaxLifeExpectancy)
	}, field, raw)
}

func (p *fieldParser) year(field, raw string) int {
	return p.integer(normalize.Year, field, raw)
}

func (p *fieldParser) optionalYear(field, raw string) int {
	return p.integer(normalize.OptionalYear, field, raw)
}

func (p *fieldParser) integer(fn func(string, string) (int, error), field, raw string) int {
	if p.err != nil {
		return 0
	}
	v, err := fn(field, raw)
	if err != nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) term(field, raw string) *int {
	if p.err != nil {
		return nil
	}
	v, err := normalize.Term(field, raw)
	if err != nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) id(field, explicit string, parent uuid.UUID, kind string, index int, name string) uuid.UUID {
	if p.err != nil {
		return uuid.Nil
	}
	id, err := resolveID(field, explicit, parent, kind, index, name)
	if err != nil {
		p.err = err
	}
	return id
}

// ToClient normalizes the raw client record into a domain.Client. Any
// malformed or out-of-range numeric field or id is reported as an error
// wrapping normalize.ErrInvalidInput. Acquisition years are required.
func (c *Configuration) ToClient() (*domain.Client, error) {
	raw := c.Client
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("client: %w", &normalize.InvalidInputError{Field: "name", Reason: "is required"})
	}

	p := &fieldParser{}
	if c.CurrentYear != 0 {
		p.optionalYear("currentYear", strconv.Itoa(c.CurrentYear))
	}
	client := &domain.Client{
		Name:                           raw.Name,
		AnnualIncome:                   p.money("annualIncome", raw.AnnualIncome),
		Age:                            p.years("age", raw.Age),
		LifeExpectancy:                 p.years("lifeExpectancy", raw.LifeExpectancy),
		TaxFreezeAtYear:                p.optionalYear("taxFreezeAtYear", raw.TaxFreezeAtYear),
		LiquidityAllocatedTowardsGoals: p.percent("liquidityAllocatedTowardsGoals", raw.LiquidityAllocatedTowardsGoals),
		Province:                       raw.Province,
	}
	client.ID = p.id("id", raw.ID, idNamespace, "client", 0, raw.Name)

	if strings.TrimSpace(raw.Budget) != "" {
		client.Budget = &domain.Budget{Income: p.money("budget", raw.Budget)}
	}

	beneficiaryRefs := make(map[string]uuid.UUID, 2*len(raw.Beneficiaries))
	for i, b := range raw.Beneficiaries {
		field := fmt.Sprintf("beneficiaries[%d]", i)
		ben := domain.Beneficiary{
			ID:         p.id(field+".id", b.ID, client.ID, "beneficiary", i, b.Name),
			Name:       b.Name,
			Allocation: p.parts(field+".allocation", b.Allocation),
		}
		beneficiaryRefs[b.Name] = ben.ID
		beneficiaryRefs[ben.ID.String()] = ben.ID
		client.Beneficiaries = append(client.Beneficiaries, ben)
	}

	for i, a := range raw.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		assetType := domain.AssetType(a.Type)
		if p.err == nil && !assetType.Valid() {
			p.err = &normalize.InvalidInputError{Field: field + ".type", Value: a.Type, Reason: "is not a known asset type"}
		}
		asset := domain.Asset{
			ID:           p.id(field+".id", a.ID, client.ID, "asset", i, a.Name),
			Name:         a.Name,
			Type:         assetType,
			YearAcquired: p.year(field+".yearAcquired", a.YearAcquired),
			InitialValue: p.money(field+".initialValue", a.InitialValue),
			CurrentValue: p.money(field+".currentValue", a.CurrentValue),
			Rate:         p.rate(field+".rate", a.Rate),
			Term:         p.term(field+".term", a.Term),
			IsTaxable:    a.IsTaxable,
			IsLiquid:     a.IsLiquid,
			ToBeSold:     a.ToBeSold,
		}
		for j, ab := range a.Beneficiaries {
			asset.Beneficiaries = append(asset.Beneficiaries, domain.AssetBeneficiary{
				BeneficiaryID:     resolveBeneficiary(beneficiaryRefs, client.ID, ab.Beneficiary),
				AllocationPercent: p.percent(fmt.Sprintf("%s.beneficiaries[%d].allocation", field, j), ab.Allocation),
			})
		}
		client.Assets = append(client.Assets, asset)
	}

	for i, d := range raw.Debts {
		field := fmt.Sprintf("debts[%d]", i)
		client.Debts = append(client.Debts, domain.Debt{
			ID:            p.id(field+".id", d.ID, client.ID, "debt", i, d.Name),
			Name:          d.Name,
			InitialValue:  p.money(field+".initialValue", d.InitialValue),
			Rate:          p.rate(field+".rate", d.Rate),
			AnnualPayment: p.money(field+".annualPayment", d.AnnualPayment),
			YearAcquired:  p.year(field+".yearAcquired", d.YearAcquired),
			Term:          p.term(field+".term", d.Term),
		})
	}

	for i, b := range raw.Businesses {
		client.Businesses = append(client.Businesses, p.business(client.ID, i, b))
	}

	for i, g := range raw.Goals {
		field := fmt.Sprintf("goals[%d]", i)
		client.Goals = append(client.Goals, domain.Goal{
			ID:              p.id(field+".id", g.ID, client.ID, "goal", i, g.Name),
			Name:            g.Name,
			Amount:          p.money(field+".amount", g.Amount),
			IsPhilanthropic: g.IsPhilanthropic,
		})
	}

	for i, pc := range raw.Purposes {
		field := fmt.Sprintf("purposes[%d]", i)
		kind := domain.PurposeKind(pc.Kind)
		if kind == "" {
			kind = domain.PurposeCustom
		}
		if p.err == nil && !kind.Valid() {
			p.err = &normalize.InvalidInputError{Field: field + ".kind", Value: pc.Kind, Reason: "is not a known purpose"}
		}
		purpose := domain.InsurablePurpose{
			ID:       p.id(field+".id", pc.ID, client.ID, "purpose", i, pc.Name),
			Name:     pc.Name,
			Kind:     kind,
			Priority: p.percent(field+".priority", pc.Priority),
		}
		if strings.TrimSpace(pc.Amount) != "" {
			amount := p.money(field+".amount", pc.Amount)
			purpose.Amount = &amount
		}
		client.Purposes = append(client.Purposes, purpose)
	}

	if p.err != nil {
		return nil, fmt.Errorf("client %q: %w", raw.Name, p.err)
	}
	return client, nil
}

func (p *fieldParser) business(clientID uuid.UUID, i int, b BusinessConfig) domain.Business {
	field := fmt.Sprintf("businesses[%d]", i)
	business := domain.Business{
		ID:                      p.id(field+".id", b.ID, clientID, "business", i, b.Name),
		Name:                    b.Name,
		Valuation:               p.money(field+".valuation", b.Valuation),
		Ebitda:                  p.money(field+".ebitda", b.Ebitda),
		AppreciationRate:        p.rate(field+".appreciationRate", b.AppreciationRate),
		ClientSharePercentage:   p.percent(field+".clientSharePercentage", b.ClientSharePercentage),
		ClientEbitdaContributed: p.percent(field+".clientEbitdaContributed", b.ClientEbitdaContributed),
		Term:                    p.term(field+".term", b.Term),
		ToBeSold:                b.ToBeSold,
		InsuranceCoverage:       p.money(field+".insuranceCoverage", b.InsuranceCoverage),
		Priority:                p.percent(field+".priority", b.Priority),
	}
	for j, kp := range b.KeyPeople {
		kf := fmt.Sprintf("%s.keyPeople[%d]", field, j)
		business.KeyPeople = append(business.KeyPeople, domain.KeyPerson{
			ID:                           p.id(kf+".id", kp.ID, business.ID, "key-person", j, kp.Name),
			Name:                         kp.Name,
			EbitdaContributionPercentage: p.percent(kf+".ebitdaContributionPercentage", kp.EbitdaContributionPercentage),
			InsuranceCoverage:            p.money(kf+".insuranceCoverage", kp.InsuranceCoverage),
			Priority:                     p.percent(kf+".priority", kp.Priority),
		})
	}
	for j, sh := range b.Shareholders {
		sf := fmt.Sprintf("%s.shareholders[%d]", field, j)
		business.Shareholders = append(business.Shareholders, domain.Shareholder{
			ID:                p.id(sf+".id", sh.ID, business.ID, "shareholder", j, sh.Name),
			Name:              sh.Name,
			SharePercentage:   p.percent(sf+".sharePercentage", sh.SharePercentage),
			InsuranceCoverage: p.money(sf+".insuranceCoverage", sh.InsuranceCoverage),
			Priority:          p.percent(sf+".priority", sh.Priority),
		})
	}
	return business
}

// resolveBeneficiary maps a reference to a beneficiary id. References that
// match nothing still get a stable id so the share is carried, and later
// skipped, rather than silently reassigned.
func resolveBeneficiary(refs map[string]uuid.UUID, clientID uuid.UUID, ref string) uuid.UUID {
	if id, ok := refs[ref]; ok {
		return id
	}
	if id, err := uuid.Parse(ref); err == nil {
		return id
	}
	return uuid.NewSHA1(clientID, []byte("unknown-beneficiary/"+ref))
}
