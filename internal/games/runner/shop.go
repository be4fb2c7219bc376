package runner

import "fmt"

// Item is something sold in the shop between levels.
type Item uint8

const (
	ItemDoubleJump Item = iota
	ItemMaxLife
	ItemHeal
	ItemImmortal
)

// Items lists the shop stock in display order.
var Items = []Item{ItemDoubleJump, ItemMaxLife, ItemHeal, ItemImmortal}

// String returns the display name.
func (it Item) String() string {
	switch it {
	case ItemDoubleJump:
		return "Double Jump"
	case ItemMaxLife:
		return "Max Life +1"
	case ItemHeal:
		return "Repair (+1 life)"
	case ItemImmortal:
		return "Immortality charge"
	default:
		return fmt.Sprintf("item(%d)", uint8(it))
	}
}

// Price returns the item's cost in points.
func (s *Session) Price(it Item) (int, error) {
	switch it {
	case ItemDoubleJump:
		return s.cfg.Shop.DoubleJump, nil
	case ItemMaxLife:
		return s.cfg.Shop.MaxLife, nil
	case ItemHeal:
		return s.cfg.Shop.Heal, nil
	case ItemImmortal:
		return s.cfg.Shop.Immortal, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownItem, uint8(it))
	}
}

// Buy purchases an item while in the shop.
func (s *Session) Buy(it Item) error {
	if s.status != StatusShop {
		return ErrNotInShop
	}
	price, err := s.Price(it)
	if err != nil {
		return err
	}

	switch it {
	case ItemDoubleJump:
		if s.doubleJump {
			return ErrAlreadyOwned
		}
	case ItemHeal:
		if s.lives >= s.maxLives {
			return ErrLivesAlreadyMaxed
		}
	}
	if s.wallet < price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, it, price, s.wallet)
	}

	s.wallet -= price
	switch it {
	case ItemDoubleJump:
		s.doubleJump = true
	case ItemMaxLife:
		s.maxLives++
		s.lives++
	case ItemHeal:
		s.lives++
	case ItemImmortal:
		s.immortalCharges++
	}
	return nil
}
