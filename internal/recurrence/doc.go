// Package recurrence evaluates
//
//	result_0 = y0
//	result_i = result_{i-1}*alpha + x0 + i*beta
//
// step by step (Iterate) and in constant time (ClosedForm):
//
//	result_n = alpha^n*y0 + x0*(1-alpha^n)/(1-alpha) + beta*C_n
//	C_n      = n*(1-alpha^n)/(1-alpha) - (alpha-alpha^n)/(1-alpha)^2 + (n-1)/(1-alpha)*alpha^n
//
// C_n equals sum_{i=1..n} i*alpha^(n-i), so both evaluators agree up to
// floating-point rounding whenever alpha != 1.
//
// Intermediate values are reported to an Observer instead of being printed.
package recurrence
