// Package kinetics implements the two-group point kinetics model of the
// reactor core.
//
// [Engine] implements [reactor.System], deriving the coupled balance
// equations for the 14-component state vector:
//
//   - Fast and thermal neutron populations. Reaction rates follow the 0D
//     flux approximation phi_g = (n_g/V) * v_g, so every neutron-induced
//     rate is sigma * phi * N. All prompt fission neutrons (nu per
//     fission) are born fast and thermalize by first-order transfer;
//     delayed neutrons from fission product decay enter the thermal
//     group weighted by beta_eff.
//   - Nuclide inventories. Fissions deplete U235/Pu239/U233; captures
//     deplete every tracked absorber. With breeding enabled, captures on
//     U238 and Th232 feed the U239 -> Np239 -> Pu239 and
//     Th233 -> Pa233 -> U233 beta decay chains.
//   - Fission products. Each fission yields two unstable fragments,
//     split between Xe135 and a lumped remainder; both decay with the
//     short-lived FP constant. Xe135 additionally burns off by neutron
//     capture.
//   - Burnup, the running integral of released fission energy in joules.
//
// Cross sections, half-lives, and molar masses come from a
// [nucdata.Provider]; the group-wise rate coefficients are precomputed
// at construction so the per-step derivative evaluation does no table
// lookups and no allocation.
//
// The engine also implements [reactor.Metered] (instantaneous thermal
// power and k-effective) and [reactor.Configurable] for runtime
// parameter adjustment.
package kinetics
