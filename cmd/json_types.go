package cmd

// planStepJSON is one plan entry in the machine-readable output of plan --json.
type planStepJSON struct {
	Step        int      `json:"step"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}
