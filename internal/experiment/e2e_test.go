package experiment_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/experiment"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
)

func newTable() *nucdata.Table {
	return nucdata.NewTable(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// noXenon zeroes the xenon capture channel and passes every other
// query through.
type noXenon struct{ nucdata.Provider }

func (p noXenon) CrossSection(n nucdata.Nuclide, r nucdata.Reaction, energyEV float64) float64 {
	if n == nucdata.Xe135 && r == nucdata.Capture {
		return 0
	}
	return p.Provider.CrossSection(n, r, energyEV)
}

var _ = Describe("startup scenario", Ordered, func() {
	var res *reactor.Result

	BeforeAll(func() {
		sc := experiment.DefaultScenario()
		var err error
		res, err = sc.Run(context.Background(), newTable())
		Expect(err).NotTo(HaveOccurred())
	})

	It("takes exactly round(t_final/dt) steps", func() {
		Expect(res.StepsTaken).To(Equal(100000))
		Expect(res.Series.Len()).To(Equal(100001))
	})

	It("advances time on the fixed grid", func() {
		ts := res.Series.Time
		Expect(ts[0]).To(BeZero())
		Expect(ts[len(ts)-1]).To(BeNumerically("~", 10.0, 1e-9))
		mid := len(ts) / 2
		Expect(ts[mid]).To(BeNumerically("~", float64(mid)*1e-4, 1e-9))
	})

	It("keeps every recorded column finite", func() {
		for _, name := range reactor.ColumnOrder {
			Expect(allFinite(res.Series.Column(name))).To(BeTrue(), "column %s", name)
		}
	})

	It("never drives a population or inventory negative", func() {
		for _, name := range []string{
			reactor.ColNThermal, reactor.ColNFast,
			reactor.ColU235, reactor.ColU238, reactor.ColPu239, reactor.ColXe135,
		} {
			Expect(floats.Min(res.Series.Column(name))).To(BeNumerically(">=", 0.0), "column %s", name)
		}
	})

	It("keeps the control absorption inside its bounds", func() {
		for _, name := range []string{reactor.ColSigmaTh, reactor.ColSigmaFast} {
			col := res.Series.Column(name)
			Expect(floats.Min(col)).To(BeNumerically(">=", 0.0), "column %s", name)
			Expect(floats.Max(col)).To(BeNumerically("<=", 20.0), "column %s", name)
		}
	})

	It("accumulates burnup monotonically", func() {
		Expect(sort.Float64sAreSorted(res.Series.Burnup)).To(BeTrue())
	})

	It("reports the standard metrics", func() {
		Expect(res.Metrics).To(HaveKey("total_energy"))
		Expect(res.Metrics).To(HaveKey("peak_power"))
		Expect(res.Metrics).To(HaveKey("regulation"))
		Expect(res.Metrics).To(HaveKey("rod_effort"))
		Expect(res.Metrics["total_energy"]).To(BeNumerically(">=", 0.0))
	})

	It("is bit-identical across reruns", func() {
		again, err := experiment.DefaultScenario().Run(context.Background(), newTable())
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Series.Power).To(Equal(res.Series.Power))
		Expect(again.Series.NThermal).To(Equal(res.Series.NThermal))
		Expect(again.Series.SigmaTh).To(Equal(res.Series.SigmaTh))
	})
})

var _ = Describe("zero-xenon ablation", func() {
	It("yields equal or higher late-time power without xenon capture", func() {
		sc := experiment.DefaultScenario()
		sc.TFinal = 2

		base, err := sc.Run(context.Background(), newTable())
		Expect(err).NotTo(HaveOccurred())
		ablated, err := sc.Run(context.Background(), noXenon{newTable()})
		Expect(err).NotTo(HaveOccurred())

		baseTail := experiment.TailMean(base.Series.Power)
		ablatedTail := experiment.TailMean(ablated.Series.Power)
		Expect(ablatedTail).To(BeNumerically(">=", baseTail*(1-1e-9)))
	})
})

var _ = Describe("regulated preset", func() {
	It("terminates with bounded state", func() {
		cfg := config.GetPreset("regulated")
		Expect(cfg).NotTo(BeNil())
		sc := experiment.FromConfig(cfg)
		sc.TFinal = 2

		res, err := sc.Run(context.Background(), newTable())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Series.Len()).To(Equal(20001))
		Expect(allFinite(res.Series.Power)).To(BeTrue())
		Expect(floats.Min(res.Series.NThermal)).To(BeNumerically(">=", 0.0))
		Expect(floats.Max(res.Series.SigmaTh)).To(BeNumerically("<=", 20.0))
	})
})
