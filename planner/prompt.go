package planner

import (
	"fmt"
	"strings"

	"github.com/lizTheDeveloper/ai-village-sub004/decision"
)

// buildPrompt renders one agent's situation as a compact planning prompt.
// The model sees only the perception summary the cascade prepared; it never
// gets raw world state.
func buildPrompt(req decision.PlanRequest, behaviors []string) string {
	var sb strings.Builder

	sb.WriteString("You are the planning mind of a villager in a small settlement.\n")
	sb.WriteString("Pick the single most sensible behavior for the current situation.\n\n")

	if req.Personality != "" {
		fmt.Fprintf(&sb, "Personality: %s\n\n", req.Personality)
	}

	fmt.Fprintf(&sb, "Needs (0=satisfied, 100=desperate):\n")
	fmt.Fprintf(&sb, "  hunger=%.0f fatigue=%.0f social=%.0f safety=%.0f\n\n",
		req.Needs.Hunger, req.Needs.Fatigue, req.Needs.Social, req.Needs.Safety)

	fmt.Fprintf(&sb, "Carrying: food=%d wood=%d stone=%d\n\n",
		req.Inventory.Food, req.Inventory.Wood, req.Inventory.Stone)

	if len(req.Visible) > 0 {
		sb.WriteString("You can see (nearest first): ")
		sb.WriteString(strings.Join(req.Visible, ", "))
		sb.WriteString("\n")
	}
	if len(req.Audible) > 0 {
		sb.WriteString("You can hear: ")
		sb.WriteString(strings.Join(req.Audible, ", "))
		sb.WriteString("\n")
	}
	if req.Meetings > 0 {
		fmt.Fprintf(&sb, "%d neighbor(s) are close enough to talk to.\n", req.Meetings)
	}
	if len(req.Memory) > 0 {
		sb.WriteString("\nRecent memories:\n")
		for _, line := range req.Memory {
			fmt.Fprintf(&sb, "  - %s\n", line)
		}
	}

	sb.WriteString("\nAvailable behaviors: ")
	sb.WriteString(strings.Join(behaviors, ", "))
	sb.WriteString("\n\nAnswer with JSON only, no prose:\n")
	sb.WriteString(`{"behavior": "<behavior-id>", "params": {}}`)
	sb.WriteString("\nThe gather behavior accepts {\"resource\": \"berry\"|\"wood\"|\"stone\"}.\n")

	return sb.String()
}
