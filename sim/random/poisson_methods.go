package random

import "math"

// interArrival counts the arrivals of a unit-rate process before time mean.
// Expected cost is mean+1 exponential deviates.
func (p *Poisson) interArrival(mean float64) int {
	n := 0
	for t := p.exponential.Sample(); t < mean; t += p.exponential.Sample() {
		n++
	}
	return n
}

// inversion subtracts successive probabilities from one uniform deviate until
// it falls inside a mass. If round-off exhausts the tail first, it redraws.
func (p *Poisson) inversion(mean float64) int {
	if mean > MaxInversionMean {
		meanOutOfRange(MethodInversion, mean)
	}
	start := math.Exp(-mean)
	for {
		u := p.uniform.Float64()
		prob := start
		k := 0
		for u > prob {
			u -= prob
			k++
			prob *= mean / float64(k)
			if prob == 0 {
				break
			}
		}
		if u <= prob {
			return k
		}
	}
}

func (p *Poisson) normalApproximation(mean float64) int {
	x := math.Round(mean + math.Sqrt(mean)*p.normal.Sample())
	if x < 0 {
		return 0
	}
	return int(x)
}

// acMinMean is the smallest mean handled by the normal-based case of the
// acceptance-complement algorithm; below it a cached table is inverted.
const acMinMean = 10.0

var factorials = [10]float64{1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880}

// acceptanceComplement caches the per-mean constants of Ahrens and Dieter's
// algorithm PD ("Computer generation of Poisson deviates from modified normal
// distributions", 1982).
type acceptanceComplement struct {
	mu    float64
	ready bool

	s, d, bigL float64
	omega, c   float64
	c0, c1, c2 float64
	c3         float64

	// table case
	tableMu  float64
	lastProb float64
	cdf      []float64
	tableEnd bool
}

func (a *acceptanceComplement) sample(p *Poisson, mu float64) int {
	if mu < acMinMean {
		return a.tableInversion(p, mu)
	}
	a.setup(mu)

	// Step N: normal sample.
	g := mu + a.s*p.normal.Sample()
	var u float64
	if g >= 0 {
		pois := math.Floor(g)
		// Step I: immediate acceptance.
		if pois >= a.bigL {
			return int(pois)
		}
		// Step S: squeeze acceptance.
		difmuk := mu - pois
		u = p.uniform.Float64()
		if a.d*u >= difmuk*difmuk*difmuk {
			return int(pois)
		}
		// Step Q: quotient acceptance.
		px, py, fx, fy := a.probabilities(pois, difmuk)
		if fy-u*fy <= py*math.Exp(px-fx) {
			return int(pois)
		}
	}
	// Steps E and H: double exponential hat, repeated until acceptance.
	for {
		e := p.exponential.Sample()
		u = 2*p.uniform.Float64() - 1
		t := 1.8 + math.Copysign(e, u)
		if t <= -0.6744 {
			continue
		}
		pois := math.Floor(mu + a.s*t)
		difmuk := mu - pois
		px, py, fx, fy := a.probabilities(pois, difmuk)
		if a.c*math.Abs(u) <= py*math.Exp(px+e)-fy*math.Exp(fx+e) {
			return int(pois)
		}
	}
}

func (a *acceptanceComplement) setup(mu float64) {
	if a.ready && a.mu == mu {
		return
	}
	a.mu, a.ready = mu, true
	a.s = math.Sqrt(mu)
	a.d = 6 * mu * mu
	a.bigL = math.Floor(mu - 1.1484)
	a.omega = 1 / (math.Sqrt(2*math.Pi) * a.s)
	b1 := 1 / (24 * mu)
	b2 := 0.3 * b1 * b1
	a.c3 = b1 * b2 / 7
	a.c2 = b2 - 15*a.c3
	a.c1 = b1 - 6*b2 + 45*a.c3
	a.c0 = 1 - b1 + 3*b2 - 15*a.c3
	a.c = 0.1069 / mu
}

// probabilities evaluates procedure F: px, py describe the Poisson mass at
// pois and fx, fy the modified normal density there.
func (a *acceptanceComplement) probabilities(pois, difmuk float64) (px, py, fx, fy float64) {
	if pois < 10 {
		px = -a.mu
		py = math.Pow(a.mu, pois) / factorials[int(pois)]
	} else {
		fk := pois
		del := 1 / (12 * fk)
		del *= 1 - 4.8*del*del
		v := difmuk / fk
		px = fk*math.Log1p(v) - difmuk - del
		py = 1 / math.Sqrt(2*math.Pi*fk)
	}
	x := (0.5 - difmuk) / a.s
	xx := x * x
	fx = -0.5 * xx
	fy = a.omega * (((a.c3*xx+a.c2)*xx+a.c1)*xx + a.c0)
	return px, py, fx, fy
}

// tableInversion searches a cumulative table built lazily for mu and kept
// until mu changes.
func (a *acceptanceComplement) tableInversion(p *Poisson, mu float64) int {
	if a.cdf == nil || a.tableMu != mu {
		a.tableMu = mu
		a.lastProb = math.Exp(-mu)
		a.cdf = append(a.cdf[:0], a.lastProb)
		a.tableEnd = false
	}
	for {
		u := p.uniform.Float64()
		for k := 0; ; k++ {
			if k == len(a.cdf) {
				if a.tableEnd {
					break
				}
				a.lastProb *= mu / float64(k)
				next := a.cdf[k-1] + a.lastProb
				// The tail no longer moves the sum: redraw on this rare u.
				if next == a.cdf[k-1] && float64(k) > mu {
					a.tableEnd = true
					break
				}
				a.cdf = append(a.cdf, next)
			}
			if u <= a.cdf[k] {
				return k
			}
		}
	}
}
