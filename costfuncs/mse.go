package costfuncs

type mse int8

// MSE returns the mean squared error cost function, which implements CostFunction.
func MSE() mse {
	return mse(0)
}

func (m mse) TypeString() string {
	return "mse"
}

func (m mse) Cost(actual, expected float32) float32 {
	d := expected - actual
	return d * d
}

func (m mse) Error(actual, expected float32) float32 {
	return expected - actual
}
