package model

// VisualTraits are visual style preferences derived from user behavior.
// Each field is a small closed vocabulary; unknown values encode to neutral.
type VisualTraits struct {
	ColorScheme      string `json:"color_scheme"`      // dark, light, vibrant
	CornerRadius     string `json:"corner_radius"`     // sharp, rounded, pill
	ButtonSize       string `json:"button_size"`       // small, medium, large
	Density          string `json:"density"`           // low, medium, high
	TypographyWeight string `json:"typography_weight"` // light, regular, bold
}

// InteractionTraits are interaction style preferences derived from motor state.
type InteractionTraits struct {
	DecisionConfidence   string `json:"decision_confidence"`   // low, medium, high
	ExplorationTolerance string `json:"exploration_tolerance"` // low, medium, high
	ScrollBehavior       string `json:"scroll_behavior"`       // slow, moderate, fast
}

// BehavioralTraits are preferences derived from engagement patterns.
type BehavioralTraits struct {
	SpeedVsAccuracy string `json:"speed_vs_accuracy"` // speed, balanced, accuracy
	EngagementDepth string `json:"engagement_depth"`  // shallow, moderate, deep
}

// UserProfile is the preference profile the matching engine reads. It is
// supplied from outside and never mutated by the core.
type UserProfile struct {
	Visual      VisualTraits      `json:"visual"`
	Interaction InteractionTraits `json:"interaction"`
	Behavioral  BehavioralTraits  `json:"behavioral"`
}

// DefaultProfile returns the neutral profile used before any signal arrives.
func DefaultProfile() UserProfile {
	return UserProfile{
		Visual: VisualTraits{
			ColorScheme:      "light",
			CornerRadius:     "rounded",
			ButtonSize:       "medium",
			Density:          "medium",
			TypographyWeight: "regular",
		},
		Interaction: InteractionTraits{
			DecisionConfidence:   "medium",
			ExplorationTolerance: "medium",
			ScrollBehavior:       "moderate",
		},
		Behavioral: BehavioralTraits{
			SpeedVsAccuracy: "balanced",
			EngagementDepth: "moderate",
		},
	}
}
