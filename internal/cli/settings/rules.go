package settings

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/models"
)

type RulesCmd struct {
	List    RuleListCmd    `cmd:"" default:"1" help:"List notification rules."`
	Enable  RuleEnableCmd  `cmd:"" help:"Enable a rule."`
	Disable RuleDisableCmd `cmd:"" help:"Disable a rule."`
	Edit    RuleEditCmd    `cmd:"" help:"Edit a rule's offset or time."`
}

type RuleListCmd struct{}

func (c *RuleListCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	fmt.Printf("%-18s %-18s %-12s %-8s %-8s\n", "ID", "Name", "Days Before", "Time", "Enabled")
	for _, rule := range coord.Rules() {
		enabled := "Yes"
		if !rule.Enabled {
			enabled = "No"
		}
		fmt.Printf("%-18s %-18s %-12d %-8s %-8s\n", rule.ID, rule.Name, rule.DaysBefore, rule.Time, enabled)
	}
	return nil
}

type RuleEnableCmd struct {
	ID string `arg:"" help:"Rule id."`
}

func (c *RuleEnableCmd) Run(ctx *cli.Context) error {
	return setRuleEnabled(ctx, c.ID, true)
}

type RuleDisableCmd struct {
	ID string `arg:"" help:"Rule id."`
}

func (c *RuleDisableCmd) Run(ctx *cli.Context) error {
	return setRuleEnabled(ctx, c.ID, false)
}

type RuleEditCmd struct {
	ID         string  `arg:"" help:"Rule id."`
	Name       *string `help:"New display name."`
	DaysBefore *int    `help:"New days-before-due offset (>= 0)."`
	Time       *string `help:"New trigger time (HH:MM)."`
}

func (c *RuleEditCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	rules := coord.Rules()
	idx := ruleIndex(rules, c.ID)
	if idx < 0 {
		return fmt.Errorf("rule %q not found", c.ID)
	}

	if c.Name != nil {
		rules[idx].Name = *c.Name
	}
	if c.DaysBefore != nil {
		rules[idx].DaysBefore = *c.DaysBefore
	}
	if c.Time != nil {
		rules[idx].Time = *c.Time
	}

	if err := coord.UpdateNotificationRules(rules); err != nil {
		return err
	}

	fmt.Printf("Updated rule %q and rescheduled notifications.\n", c.ID)
	return nil
}

func setRuleEnabled(ctx *cli.Context, id string, enabled bool) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	rules := coord.Rules()
	idx := ruleIndex(rules, id)
	if idx < 0 {
		return fmt.Errorf("rule %q not found", id)
	}

	rules[idx].Enabled = enabled
	if err := coord.UpdateNotificationRules(rules); err != nil {
		return err
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("Rule %q %s; notifications rescheduled.\n", id, state)
	return nil
}

func ruleIndex(rules []models.NotificationRule, id string) int {
	for i, rule := range rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}
