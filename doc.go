// Package cvm provides functions and types for analyzing the regulatory
// filings of Brazilian investment funds published by the CVM, the monthly
// disclosures of real-estate funds (FIIs), and the market price series that
// go with them.
//
// The core functionalities include:
//   - CDA readers: one reader per block of the Demonstrativo de Composição
//     e Diversificação (BLC 1, 2, 4, 7 and 8), each normalizing its file
//     variant onto a single canonical position schema.
//   - Portfolio composition: filtering positions by fund, partitioning them
//     into asset categories and computing per-category weights.
//   - Return series: monthly and annual fund returns from quota values,
//     benchmark comparison, cumulative returns, drawdown and volatility.
//   - FII indicators: joined monthly disclosures with P/VP, dividend yield
//     and leverage indicators.
//
// The package is meant to be called directly from interactive analysis
// sessions: every function is a stateless transform from immutable inputs
// to new outputs. External data (market prices, central bank series) is
// fetched by the bcb and yahoo subpackages; figures are assembled by the
// render subpackage.
package cvm
