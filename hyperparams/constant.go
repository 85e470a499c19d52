package hyperparams

type constant float32

// Constant returns a schedule that always gives the same rate
func Constant(value float32) *constant {
	c := constant(value)
	return &c
}

func (c constant) TypeString() string {
	return "constant"
}

func (c *constant) Initial() float32 {
	return float32(*c)
}

func (c *constant) Rate(epoch int, avgLoss float32) float32 {
	return float32(*c)
}
