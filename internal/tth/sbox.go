/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package tth

// Tiger S-boxes T1-T4: four 256-entry substitution tables derived from the
// first bytes of pi, as specified by Anderson & Biham's Tiger hash
// function. Generated once offline and compiled in as static tables; they
// are never recomputed at runtime.

var t1 = [256]uint64{
	0xCCED26A9327C3B4F, 0xB5D214A76DB3F351, 0xB7F8691659C00AB0, 0xED70A657C6593C2E,
	0xD8BB826C29E98DD5, 0xFA70C2591C263092, 0xE5810018F6CCAE15, 0x05C2243C4E4170A9,
	0x3CD02AC9FD3E34CD, 0xF2BD0FCEFFB78B72, 0x20E89E0BAFCCADC4, 0xA88B9AE84E0536B1,
	0x447F44041D5D7A66, 0x83C13D8FBD2A2BF3, 0xA6D4E62DF192A838, 0x9AD856E5CE35CD84,
	0xD5AB79049D61666E, 0x74627092F417FD03, 0x2A5EE129DB179AD8, 0x123334ACB50A96C5,
	0x6446A0EA1C26B217, 0x059B89E790668DC4, 0x17845F55F1F447F9, 0xF9FC9AD86362E5BB,
	0x68AB3696C480C25C, 0x184F8DB42A219550, 0x7D094DBB97C202D2, 0x9311639B0F55FB68,
	0x540556B3512C0D97, 0xA7C9E942089D5D51, 0x4BF6F12B64ECB929, 0x4B4F7B1B968FBC9F,
	0x5B7CF55E0867AA1A, 0xFF59877C8C199A82, 0x2AF22EE66A2ED45A, 0xD4E44249ACA4FBE8,
	0xDD1B06D3256D9AC4, 0xFD022467BA956B8F, 0x5C0A8F59DC7C9C3F, 0x9D6639F3749AD902,
	0xE0F90632E7193CF8, 0x2FED78C2A9F53B27, 0xC6F272A804B5C9DE, 0x44D72B6ABEBE1861,
	0xEB9C2BCE6571E644, 0x8B4ACC0B15217A31, 0x73F84A59A80F7097, 0xE288EBB537093801,
	0x593B79B053FF7B6F, 0xFF1573EBFF8762E3, 0xE1A94CFEA67E02EF, 0x7C5BF1B6F7D3A8D5,
	0xDB82243FB3BA25EA, 0x1D168DF44EAAE6B6, 0x19A3FCF4A7BDB645, 0x9C0A583B8096126F,
	0x9BA2E6F4C46F59FE, 0x953536BE3A1D3139, 0x37DA925D6CB66863, 0x991845CC98EA7F5B,
	0x70AB91CF53CB0A7A, 0xB14FACB15E47ABD7, 0x0E9182168005D5C8, 0x1BAC0CA334592653,
	0xEEA28DFB08DF807E, 0x94A1C5C758FACDCA, 0xC892DCFDCD1DACE4, 0x6CDE439D2BC1F943,
	0x104FBA5DC813FD7A, 0x402D3B1FBCB956D4, 0xCBB73C94612B0FC9, 0x7F2FF4CBBE0D4C11,
	0x16BF0FE3830084E1, 0x92F2404D413C99A0, 0x775F486E1F6F90E6, 0x5AB2960D9A8E6643,
	0x796D7B034CECE511, 0x564095D02D456D04, 0x1D497AE90BB2DA21, 0xB1E28B671E2C6EDD,
	0xCF62981780E2CEC4, 0xB4B1C5B57E131F97, 0xB213C852DB01B6BB, 0xD2DCB2ED1A60745F,
	0x4D2117D1F8E0C7EB, 0x5035D31EB1D75D9D, 0xF429F657F5574D76, 0x9AB1F2A058A78B1E,
	0x89E488EE5179ECF5, 0x861202B4679F082B, 0x6C6D17644551E759, 0x990BAA801776F4A2,
	0xF596241389CAE981, 0x02DCCE011142233D, 0x950FEDE2175F62A7, 0x0E52D545AAE1BCBB,
	0x7BA62B3E8ACB8BD6, 0x9497E03DB59533BE, 0x6286ACF0F53DF240, 0x4E333714EFF10C8F,
	0x4C7E7C95F43178B6, 0xC86B3522932C3E9E, 0xED145A0BA04A0DA3, 0xC47896B047CDB1A2,
	0x2BE499327B00D173, 0xAF00BD357596BD11, 0xC5ADB478FEAB557F, 0x123DB2E3C237E59B,
	0xF038AD651D297EFE, 0xBF937270978F4C58, 0x1E263C121D32C453, 0xAFF559ABD9F47F04,
	0x700EF9F4715097A4, 0x9E5668462315B427, 0x568A748B911AD406, 0xC17BFAC2B255F921,
	0x46D01F0BA00EEED2, 0x800A7850FF68D405, 0x35182C1DB313D132, 0xCA0F2C2DFDB320DD,
	0xC5637F72ED919A22, 0x275BCAB1603D437A, 0x18D495F176C94CC7, 0xD442D7858E9B1689,
	0x12DC83F2AA0B18AF, 0x701520F8997BF0E1, 0xECFBE1469094F766, 0xC5DD4F8E161BCCB9,
	0x1180E95728EF8DDC, 0x46BDCE407DF17948, 0x1417FFDF47EE3BED, 0x4A299FE36EDB5C92,
	0x23393B52005670EE, 0x235C440B74D37AFE, 0x8AAE86B73F6C3249, 0x92F8430A79585FC6,
	0xBDFFE5C232AC8E6A, 0x86C23C2E122DBB0B, 0xFF0DF462604CF623, 0x8DAA78DCCCF4F1A1,
	0xF70AC5122B0FCF2A, 0xA92C1A5BBBD711F9, 0x2AB574EE786C1FDA, 0x2B52FA8C697B9D68,
	0x6D16E5D17E9F8EB1, 0x9DC6212FA8176007, 0xD846AF9FED65A89D, 0x4443953DB7E7352D,
	0xE3A8D6C900CD5607, 0x5D001468768CED47, 0xBC0A66546B4DCF5D, 0x893C987A274E40BE,
	0x631E11907CF099F4, 0x8DFA5BE1A02C2757, 0x8DEF789B90208EF8, 0x2D570D23E5A1AA58,
	0xF4A78F6D74873CA9, 0xC2861E5530BE7804, 0x59E60898F4F15C29, 0xA86E5A06834480C3,
	0xBB4EFF1610115938, 0x0967D305DA12FB06, 0xCEA4FCC793074309, 0x26C053663480EB38,
	0x0DC48402946F0C45, 0xD96EBA68665BF68B, 0xA69F27D8E8824C4A, 0xD552EF4D8CA1158F,
	0xF5061CB94F023598, 0x2F81A73B7674121F, 0x25AE9838912BCAAB, 0x2A0536F35BC7602B,
	0x2D9E1046F0837F92, 0xFF1AF77558116984, 0xEC13A8ECD15C7333, 0xD20029F52FE970FC,
	0xCE6B982575E4F446, 0xF07CF5334B2A8C21, 0x114385CA7DED344B, 0xC5297D195DA9F388,
	0x16839E799827DCFC, 0x436706967029E1BE, 0x03C58B401AFD5FC3, 0x0351935537867AFC,
	0xE6D61BDED0EE2FF3, 0x9176F3103C9C3202, 0x1F746596DB15D29F, 0xAEA993514E8C5E43,
	0x764D025A161D97FF, 0xBDA7864C738CAA89, 0x0B8DBFADA8263740, 0x36EADC9D740A4C94,
	0x02DA80E66E55B54E, 0x872FBB4C11094C1A, 0xC1DC19286E3A484E, 0x6E71890AE0448A8B,
	0x34A58ECDBB4D7894, 0x27F4A4059442212B, 0x78E736C80957EE42, 0x3B9A68121AADA90A,
	0x66FBA5A4BA10F4BD, 0xE8EFC8A00C21F829, 0xCF9EF7687C67831F, 0xD5A19506FF79096F,
	0x73C5829D2CF06BA1, 0x8DC8AC2EACC84265, 0x347992B97230D563, 0xB094A09F64A185B4,
	0x119B222CB4E501F1, 0xF685DB1AE205D090, 0xB17D03272C6A6F0C, 0x8E00BAF13428FEA3,
	0xF0D72B6540A60E17, 0x82972D90D6022532, 0xFA8B0FF4E92A1CE7, 0x67EB7FF115DD7869,
	0x2F5BA5D8ED82CC4A, 0x7C85EE17CE346224, 0xA1C5C374A432E399, 0x6BBC162CD2771D4B,
	0x1A89786F4D66B187, 0xA7E0417711BBD4B2, 0xA70DE3919F27D58E, 0xFA782F7748A88F7D,
	0xE3AC291E57437ADA, 0xE24C412FFD72B7ED, 0xD9FDD977FFFF1971, 0xC377664EBD2F995D,
	0x05731D2EC79C7021, 0xB61C909E358F3343, 0x6A33A7F528E15ACA, 0xB03065B50CE87668,
	0xDD306CD00D8DCE9B, 0x84DB7EA9E1D97CD9, 0x81E22E58FFA5F5E1, 0x003AD0FA2377CFB5,
	0xBD7064EC4623BF20, 0x40AE7A4F8E054DFA, 0x0EA04EFCB8935A19, 0x612D9F0F68314F31,
	0x4CF3A9D01E73FF41, 0x11DAAD1D56D2DC78, 0x1157DFAD899072C5, 0xBE90DEF262FF030B,
	0xF687DD9630E7D759, 0x41CBC0E56A1330E1, 0x396F9DB450684C6B, 0xFC38B13BF92738E3,
	0xBEF9590B23D50610, 0x29F12F3E5A8D3A21, 0x768E513EACDB9B5A, 0xEDEC41C910A23475,
	0xA732E7A6546FC337, 0xB6EC4AD20ADB6F29, 0x412E336F0D486551, 0x0D854BE9D335FE73,
}

var t2 = [256]uint64{
	0x2C98BA6F718E4D12, 0xBE1CAB7A7D497655, 0x2863B128C1CD3DAE, 0x85028A7037CDE34C,
	0x336305C1F32050E3, 0xDF4A7D330A197146, 0x17CB7B3BCDB36BA1, 0x40841A9DBB330AD3,
	0x69F772E27F133641, 0xF3DA7646ADF5AC1B, 0xF4BA294D4E563BF0, 0xC2FE707CDDC3E6B8,
	0x89202C725DDFFCB0, 0xD16CEF10047EBFAA, 0x9F26E076B576C19C, 0x23E6377CBD551EE5,
	0x19899DE019048B0C, 0xA9A6146DB56C3EA7, 0xC19CFCC8A964DD8C, 0x221B279B4B3A8A94,
	0xB3C59423DE062D5F, 0x9FBA18AFD22A5146, 0x7394BD16A1312C9B, 0x462413B97ED79828,
	0x364CEE5C7854380A, 0xB32E96CD566B4BEE, 0xF7DA431D2B073379, 0x1EFE11D7E8E18FB1,
	0x20C03E0082B02F38, 0xE2B34E589073A3DA, 0x94385B3ECA649B1F, 0x3F99A3CAEE93620E,
	0x311F3A6BC881C7C6, 0xE6A6D40715AED9AF, 0xC2B6EB76690DC73A, 0x72DC0E8E2D61946F,
	0x995F4AF338386DEA, 0x2E19255D3C2212B8, 0x9AC96B30E38292A2, 0x25A5845D06DF2732,
	0x8D0E6808897BEC96, 0x161DDDA8D05447CB, 0x08B870181436EC8B, 0x2BF0FAD764722A6A,
	0x350828904BBDCBE1, 0x9EF9F45952806193, 0xE541C4CFBC664B2E, 0x50775571886865F4,
	0x75F61FB85EA08C97, 0x689FFF0BF4F8AA71, 0x98C3B81BCA511816, 0x370DA65699853FB2,
	0xFF81B5A507E3471C, 0xEC9AB5DF58605D27, 0x9994C72B9DBA74A7, 0x73559F2A0BE0C25F,
	0x70DB6AC9F9EDF8C3, 0xA35519C584950FF8, 0xB7ACE95F242FAF65, 0xF345FF8992B22D3B,
	0x8D8E4ADFA72327E6, 0x34CF4DFD7B82D1AC, 0x22ECBC30999CADFE, 0xBA55823BC43F28BC,
	0x43B753FEF5A33838, 0x707E5E0CD0458C12, 0xE80B0C8B91D36566, 0x74557E928D8FF874,
	0x3911F3F1F186DD54, 0xF1CA7D62CB288D8D, 0xAE3AE4782E2CCA5E, 0xB95030AB4DB712B1,
	0x3A2F9216F612662C, 0xCBB636899FAFC2EC, 0x53ED8C183B2C6DD3, 0x02CCD5297D1C7E61,
	0xB9CB060A3020E730, 0x7528361F04641C93, 0x3F7F0C3B13647A4E, 0x4A5AC46F6CC8FD67,
	0x61A63ED20DE77275, 0x1CFDE66D929CB95D, 0xE5C740DE941481CC, 0x28565575AE16511F,
	0x3FA99E8E680CED1B, 0x5619D58046978B6E, 0x25F8638993453CC8, 0x4EB762D71A8EAA17,
	0xF7F7F56D02025930, 0x0A93693DFF5157F1, 0xBC9B13A9A11AA03E, 0xF1C1AF3EB32AC1A4,
	0x0C652E64D1CAE7D8, 0x103FB7371F60B37F, 0x64F11C551D8B343F, 0x6C5AA034B578B5A6,
	0xFE1063DD66D7CAE7, 0xEEE8EE97DAD7642D, 0x87E3571A778016CF, 0x571EFEEA9CF9F3F3,
	0x9A69FED238166060, 0x624F4BB96FA38992, 0x45F7F139E79D2E0A, 0x3BA65019B8752788,
	0x8EA91E48F7156455, 0x026C47C6EA76CE76, 0x95D4AB277E9F2311, 0xAC1A0BA1B0C90369,
	0x48421DC3C6A2619A, 0x74EB6C438D7EC5BC, 0xC858562CE7642FFD, 0x3FCCC4C2C46705AC,
	0x374C3532DF4A71F8, 0x710425173C7392AD, 0x6421F1B6D1B78231, 0x9205535163671828,
	0x0A05239D172AF401, 0x113AC2C1147D56DE, 0x5DB955053AE07EB1, 0x1764AC70E301B24C,
	0x145EE4BB1EF1C3D5, 0x15407E8DCD8DD068, 0xF8DED901B5BFF395, 0x283F4D1CECC0A01C,
	0xA7F13849697EC09B, 0x59A236AEF078791E, 0x4C83AD956565AC1F, 0x445952CE2EDEB035,
	0xDE1FCE49A16DAE8B, 0x660E321040B4D4D9, 0x0F14DD006805B256, 0xBFFD7EF696775389,
	0x1E951995A7A9D6A0, 0xABD398456F8CB197, 0x17FCD45105174B8A, 0x8F50B8347CB61623,
	0xB995D878F0E699ED, 0x623F1724E8F51D48, 0xB7B58E73D717C4A8, 0x222119197CB327CE,
	0x04A274554666E97E, 0x75D382313B174AAD, 0x5EDF332AE2F39E62, 0xF88A63317CDA82C4,
	0xDB7A43DB1A85281A, 0xE50816E21414F4B1, 0xBCF0F687A6E97120, 0xD23ED0CFF5F92631,
	0x9259D157282D55A2, 0x2A9C53B21B628B73, 0x7F2AE9BBA9DD7F8A, 0x134C23230B3B8674,
	0x7FEC779A92FF2616, 0x808668AE59523DEC, 0xD5F8A1D98366D0B3, 0x35DDFFE5142FBE21,
	0x67F312E0EBFACAC4, 0x8BA3703786D6CB4B, 0xE452A84FB7D36901, 0x1E2F9DEC9594CCD5,
	0xB3062615A46418EA, 0x5AD5F8E99DFA3028, 0xE01E004308C373F5, 0x69EAE122A3A00FF2,
	0x4723254F31387759, 0x8000B7E24D6B7305, 0xA70BEF4837EB0BFB, 0x329BB3DE40A2E733,
	0x4E3035DA064ECFE6, 0x21D8A6EEC280C076, 0x2ABAA3A9D881CD42, 0x39B4DF2B69F03E6B,
	0x9D590EEE54ABDB01, 0xDD6DBA0E96010B38, 0x8C6AFA8708C9DAAA, 0x0B350877063BE797,
	0x4826DB4042870BBF, 0xE6CAE9180519359B, 0x46468F8CE4CC42C2, 0xB1D00879BE55CCC5,
	0xAA70C25D1E5C03FC, 0x3C3B2213E5E70C89, 0x32CA3AAAC3DA3C7F, 0x290D84EC4212F2A8,
	0xC1C55AFE9B95F248, 0x0922496B8FC25E71, 0x76CCC76FF5E26808, 0x136C963786989B36,
	0x3295AEE683D39190, 0xFF777BE530DA1F8B, 0x48EC4B79F431427A, 0xD1321BFB82795511,
	0x1DC45EE4321FE77D, 0xF3FF36EB93534C2B, 0x22EBD10E00AD5E49, 0x2D03153D7FCFBEFA,
	0x8C7E87039DCC16B4, 0x818D529237CC4E9B, 0x7E50DE0D78B900AB, 0x4BE787EBF8934747,
	0x20C0D44CDFF40740, 0x9FA1C6BA200EBA9F, 0x928220A64690213A, 0x5AFEED94BF03AF0F,
	0x31F27529D0255757, 0x10255CE4BC49F5C8, 0x1FD33BEC9520AC57, 0xAEEB6B83DC96F447,
	0x32FE13A0BDA95B68, 0x7BD9A4DC34508FB9, 0xCA2BE58AFCDA63D6, 0x0FE42D5BDF19A919,
	0x24F91A6FFA118044, 0xEC6B80B526EAC8ED, 0x4FF20046FA38F1F6, 0x231D29FD78FD505B,
	0x34BE02FB1F560B7A, 0xE4A17615A9371C5A, 0x2B0A8925A81FFC9B, 0x0567FCC0B2F4A642,
	0x15DC6DAB2E42BABB, 0xA73B5A496CC48406, 0x934F50A354DAA01A, 0x476100D02073E560,
	0x61B89ED3F8F0E3B3, 0x68DA6665C0DDECE2, 0xC17C220334F0DCFD, 0xB78D83AFD8D75893,
	0xE04DE722D074B973, 0xA80A743250C1DE30, 0x6AD2B5763F0B4A63, 0x53EAA8E5972D90BE,
	0xE6C131C0904BFE66, 0x5A010B71CE61B7A7, 0x9D8EDBD0BF2B6A2B, 0x41A4FBE0EA9AD392,
	0xFDD33782358EA6B0, 0x4D1F383D5755E821, 0x69A9D4ED461D89AA, 0x5A370B6640956C2A,
	0x5E8BDBF229309D0C, 0x9E9B47DBA64370AE, 0x4BD088F015E5FD52, 0xAF2F56A05B832887,
	0xA9D91FD75D101625, 0xDC20B6A6CB9DDE3C, 0xCDF3010A00A74477, 0x7173953E1647B673,
	0x96BB49C5F4AA6DE5, 0x11CC2D0EA293AA8E, 0x94837F98D2BB7695, 0x43F07B72115AE736,
	0x274E1FECEC61F53D, 0x32BDF2CAEE5AD5B2, 0xB4DC2386FC7FC25A, 0x69DDFDF59024607F,
}

var t3 = [256]uint64{
	0x07E009DAB74CD3C3, 0xF25DDDAFE8B64FFA, 0x991395A1BA6C3819, 0xD1338C9108B1E43B,
	0xBC45A07C1C390883, 0xC5F986A9ECFDCDD1, 0x3D2D69AEAF26581B, 0xC80A14D2A3881B2A,
	0xE0176CF7342F78DF, 0xB688CDC9605AC07B, 0x68560039905C87CA, 0x9A65012568B0625B,
	0xD74D7F692E8895E4, 0x46CEFB9F50010D48, 0xE36F292AFC73F92B, 0xBCEA58DA3796CCFF,
	0x56BE9C8BAD1C6C9B, 0x4B7D966F9B1809BA, 0xECA1185CB150670B, 0x68A50F038FF60E49,
	0x5A6739A4D7FE76D4, 0x57DD734A6669D745, 0x46404AA472440CF6, 0xB098DD22AC8B393D,
	0xBB9D91E4AFF0B8CC, 0x73486060840D1AEC, 0x17FA2BA389F4B3AF, 0x6EB964E62B08DE9A,
	0x8722478637C5364F, 0x5EBF4D7D0D8CE8E9, 0xCCBEA6F70AF689F9, 0xA5016B241BDC3677,
	0x9D31BF8B02D591E6, 0x16F82EEDFFA7DF5C, 0x04855B015F55D18C, 0x1D4F83F614C555A8,
	0xAC1943ABD34F365F, 0x67075FBD3B8BD394, 0x1C65207EECA87508, 0x1874E3BA678CA65C,
	0x2F6F2958EAB73D8A, 0x9B6DD2666B8D6D70, 0xA49D6135C87F1C25, 0x052BE18A26176F8D,
	0x740A0BE02AFDD8F1, 0x587662489FCB8DDC, 0xE42E542ABA7CC9A2, 0x6FF0FAB8865C0FF5,
	0xF14DFF1D753A275F, 0x8D4CDCD68F1D1B18, 0x640889DAD9A399BA, 0x56B47C9023F8C67A,
	0x065553935117670D, 0x1120264E56754014, 0x5F199C718160DCD6, 0x036D9FEF8265D62C,
	0xD7E34C91B7B311D8, 0x9635C69E8EE4E995, 0xA0BF602CCF577E31, 0x614A3619CE191E05,
	0xE0B8A448033A314D, 0x46D01A8568E9DC21, 0x1092BC78AEA5FDD8, 0xAD95A2B1E15848E5,
	0x4F929FFC70D791A2, 0xF28EB09A3A3F92A7, 0xE1312205F8E4C69E, 0xA4E6D1FABFC17032,
	0x11A9C8AFF46A34CE, 0xB030F4ECB0A7CAA7, 0x177C30504FBF2EA1, 0xDF89CF7C933BC1E3,
	0x8A761807366CB360, 0x8066D75547DAFB87, 0x3CD3B4C7EBBC8FE5, 0x1EEBE9C99D339ABF,
	0x06DF1DE70829BC4D, 0x64BF3FAFEF28A9B3, 0x8BB5EE1D9D5243B1, 0x36A58E4A05257FD6,
	0x46D14EF244A79037, 0xD2CD19E02C8293E2, 0xE132AB5488A78321, 0x829793AE07B2BBC2,
	0x783FC2CAF187EC6C, 0x678274847EEEE2C4, 0x07620F8D89D81B16, 0xC19523FEC57A6531,
	0x5579FF49FCD402E1, 0x1DE34FF00F72A094, 0x1539F66314D3E120, 0xBD81F73AF3730471,
	0x833DAB23B7159B6D, 0xFB3205F7BC59927B, 0xE10482FE7D4204AE, 0xA6B5B3ADC17545F4,
	0xDCDA075690E4BFDB, 0x0BE080FB4252C8A8, 0x5828DE46C68AC969, 0xFFDFBF92460B212A,
	0xF61080F35FBF3ECB, 0xCAE62C0320951034, 0xF6C08B1CA72EA765, 0x4D887763241DA456,
	0x11428DD5003EF712, 0xA66F19DCF9850C95, 0x2CA8846074B743DA, 0x8BE3FAB1C8DA5E88,
	0x23B2769AA2708646, 0x0F04B44091A4C192, 0x476443279FF510E5, 0x168D37BA99C59162,
	0x3FD61CE4A7DB54B1, 0x25BA3DC97BE4F0BA, 0xEC9FDAB261AC8A5A, 0x11A949369B54A708,
	0xF354392DB07BC625, 0x9F66FC9195BD0C55, 0xC09BD3981FE40758, 0xBB7B8BA4A91FB70E,
	0x2F47119191A5528C, 0x20854CB571F13F65, 0x147A55388DBAEC98, 0x2FAD60A58F44E6F0,
	0xA8577C01E15E44A8, 0x508BBFCEF88BA85F, 0xF2F80551AB9F7A26, 0xE7D0BA175401ED93,
	0xFD3FB85F13680B6C, 0x08963075D2B8587C, 0x18CF505CB10A71D7, 0x6FE1BC72785F94EA,
	0xD021A2B062C2B3F8, 0x0633782CF7264809, 0x14288DBFE869EDD5, 0xE0B9048611F3C0B4,
	0xD89316466E775F34, 0x75F2CC68610D9827, 0xDAE81498B4856735, 0x03C6AEAF0FF908FC,
	0xED16E7F1260FB66C, 0x15EE43C053CC8A38, 0x5A5C864742A15E5D, 0x2859C18A0F38BD21,
	0x95E85DE11F5C870E, 0x226914BC30696ABB, 0x2C5E11DCE108EA4B, 0x8478E6122FE66DC4,
	0x69ABCC29893F46D8, 0x00803B0BFDF42E44, 0x97BE5DAC21719A05, 0x4CA83568EEC068DD,
	0x5E4B25617B6B23D1, 0xF32C57BB8821C479, 0x82777961B8768F6F, 0x46F731F54941FA3B,
	0x5E22A43D2593BD52, 0xA712293CA843FE8C, 0x65DE72D3ADD709FC, 0x21D027818B0345ED,
	0xD928AFD4D008BF52, 0x12828D6AC6C3861A, 0xD9B0389721C19897, 0xA82EA140C7A8D7FC,
	0xCE0843FE6BCFD902, 0x0933A65F894D8F92, 0x0174178757BAAC3C, 0xD58237325677EB0A,
	0xBFD25BD9C69DBE20, 0x5FC5E5EB65371A1B, 0x086C814629BCAAD9, 0xA1124D85408CE991,
	0x4380118ACFB0AE61, 0x95420C97EA06764D, 0x497A300369BBCAB4, 0xAEFD27BAA2683F3F,
	0x43612467623CB905, 0x67CE47991302E5BA, 0xBC74B7A3669F7EED, 0x6E476A1D29C29449,
	0xDF72DFD76A7B1004, 0x0B265577265905FF, 0x718512E752F8DF28, 0x961DEFA1EB3837C2,
	0x44FB7E20D9B88E86, 0xC0116F146EFF6761, 0xBBEBAFC8FD70AEAD, 0x328DC3C53F98306E,
	0x564535118B08CF60, 0xFDC6E0D8FB19D0E4, 0x0E2701BE7F6802DD, 0x46BC52A0349ACB1F,
	0x004A907771C5DB86, 0x2512DCE508C79B8E, 0x83291CF999C11830, 0x7B47DA6A37F1EC27,
	0xC0A13032AA792B31, 0xC323062AFD5AE7F6, 0xD3C22EBFA16AB6D8, 0x27637E6C2C092C2F,
	0x9AE2B24402565502, 0x875941860E2B6FC1, 0x734A96B4795FD45D, 0x1960D091E34C127B,
	0x580020B8929AA862, 0x65518D0B9EC0B620, 0xD087B2D8D29B2D7B, 0xCE0A742191A070AB,
	0xFFF5E6C1A0674B9F, 0x2B3824D019926CAA, 0x19389E2E4EF0B506, 0x401C49180A425D5A,
	0x6A30B792D9563E97, 0xE27C7BC833FB3034, 0x0651015D39C58F6B, 0x68EF05E50B02E889,
	0x2EB22D9F35F48BBB, 0xC871F9EAE3DDBED8, 0x8319453F9F51763A, 0x97642365702405E2,
	0xAFA2C2B911D810BF, 0x6B15175FC9240C38, 0x3286235E09686AA0, 0x2CE2B3130878E36A,
	0x465F3E26A6397DDB, 0x047E0C2070E88826, 0x5541CCD8C578170C, 0x1B135B2082112D00,
	0x8C6A199B329AC0A6, 0x1C86F01FFDB71492, 0xF19B175987F60D8B, 0x65FF04980F8A7177,
	0xB8BE3C485922E112, 0x97FD32A2DBD6D35A, 0x33705F24E74C9C94, 0xDACCC3B061746F8F,
	0x9E03045994501112, 0x02117A7FDD27AFC9, 0x4233FEE79021B859, 0x6244AB46ABD19AC6,
	0xA85AAC050F698EB2, 0xB99A82211483CB92, 0x4AEA072067C113C7, 0xFADD37D90B3940E8,
	0xBF0834E87A627C5F, 0xD112A87E2E51D74B, 0xF5FC66F1DC05DD98, 0xD6A86B182DD2FD86,
	0xC8AD5F5CEEF5DA82, 0x4EE435E84DC9AFD0, 0x645229B4C6FE454E, 0xA59DFF19EDE45813,
	0x0290A75BFAED9EDE, 0xB1EFC8DF463C1AE9, 0x9E477D2BDBB51B9C, 0xDDE1B9DA7F6E0220,
}

var t4 = [256]uint64{
	0xBB353925040BE2EC, 0x9BFE4EA095F54AC8, 0xB6299A8CDC684C02, 0x3B4738F79A63FAA2,
	0xD5135FDDEFB7BD85, 0x25D04CACFBC69982, 0x2C4F231BFECC73FC, 0xA7FD01271071B36B,
	0xC976FC6F0381C7A5, 0xE03BC63CAB26D91E, 0x8775C84A8BEEBB88, 0xD26C7A89403B91E6,
	0xF2D1C1B4AE178F91, 0x9C267DCA1A01B2DF, 0x982E4CA55A27C061, 0xA197057B1CD8DBD3,
	0xECDA379987363883, 0xFC1DAF506787FCCA, 0xD6F6DAA834648CB4, 0x4B18B27429AF392D,
	0x392A1F4EF8EEE4E7, 0x009C0509534A679A, 0x79C3180FFCA43C24, 0x599180B1631CA119,
	0x6C0E1EBE22A5516D, 0x5C6A75745CB6CADF, 0x6D285386FBFE83B5, 0x7AEDA13A39BFEF1A,
	0x6DD607C726F3DC70, 0x74856A3C5A1E8517, 0xFA3A00F16DACE829, 0x6C293BEA5CD79074,
	0x5425ED73E31482A0, 0xD5116E7E424C1B67, 0x27670470BBE7BD96, 0x3609BEA8D4998B81,
	0x4AF0DA3671FDE873, 0x0E46EC5D1599689E, 0x5D5884F85662CE59, 0xEC40EB2625485D90,
	0x1ECEEBA079E1379F, 0x60B7A159B04ABE03, 0x46E5CB9476383E92, 0x07773D9564448074,
	0xE59F310BFFB8B905, 0x55864F6C1153372C, 0x91EA6B299CEE5649, 0x0CCC27937A9D5D3F,
	0x263B062291B0A8AE, 0xF1CBA31107D2FE4C, 0x5E4D72D5CCAD2212, 0x524D31C88216742A,
	0x0D679C90845B3BFA, 0xCE726898B03A2EC7, 0xE81DDD1C5CE91C38, 0xF0F2D9B6088DA780,
	0xF9AF766D07701702, 0x1E1079D24AEE0CDA, 0xAA814569E2E22CF6, 0xBBF7F73841D86C41,
	0x837BC881A8C4CBE8, 0x1E7A137AA34EA578, 0xC4A31C1503AF9C61, 0x95B62613EF7F5DA1,
	0x15B1D19011FFC136, 0xB6D39FD5BAB9F4B1, 0xFA8555949E5DFABD, 0x2E4026C08E3FF34F,
	0xB2DF7A901B6FC22F, 0x638ADEFBAEC00EB9, 0x1AC41E768CBC8FC0, 0xBDF12DC1CEA9330D,
	0x5E16623B773AC5DC, 0x798C1D830A45F317, 0x360E253FFCEFD5B2, 0xD4662DA21C6B0EF9,
	0x9F4FCC972D224126, 0x31A32952D8285BE1, 0x662B5E7DEF9DB22C, 0x522BACA18F6817C2,
	0x0382F0EA033A9070, 0xCF9F5BDBF2B74316, 0x7A50F4A4A3AAF07C, 0x4F721098F9A709BB,
	0xEB9522244301EBEF, 0xCF42EB727AA2DAA5, 0x7D690CE52A3EDBAB, 0x3FE89FE590176B09,
	0xF9CCB1FC9EDF0462, 0x7CAC3F1D614AB195, 0x7B1F822D54717722, 0x0C5A0617E6443097,
	0xBBD93F5613D83F51, 0x8DC9EDACB1D26749, 0xED396498E360F172, 0x7C3CBC448FE5B758,
	0xF1637363A4F3839F, 0x74980BD3097093DC, 0xDB184B7014D5F6E6, 0x845906CFC71088AA,
	0xD837A8BCD480C602, 0xCD794F47576B13DE, 0x3935DD23F59D789D, 0x690EC992384466C0,
	0xC3AC9AFF99BC188F, 0xB5F26F2AE8155A35, 0x35A922C35B22D29A, 0x58E58B6C18B179A3,
	0x0A795E39DEB67AC7, 0x5E813D4B6544DFAC, 0x66843194E0C4C29C, 0x757C767D447E7721,
	0x7B276F246BA351EF, 0xE394D1B09300EA62, 0x730C703E39A89D43, 0xA1150B5C431E8A34,
	0x6F73002B7781281C, 0x1956820C57A69F5E, 0x29814CC3676AEF24, 0x2068C75EC90DC671,
	0x345BA93C33BFB3A2, 0xA3A89A3C190C44C7, 0x3133F5B3B3FC5FA9, 0x62F3256C60928AB7,
	0x2E368DEB7A25D575, 0x529CAADD87763BBF, 0x94AADFEAAF9158AA, 0x40578540BDA5AC65,
	0x860C61572A7C8CB5, 0x9A8025EBB982FC91, 0xA44F9B48117589CB, 0x310B630CCE19BD61,
	0x699089174B1767F8, 0xDA61123F9C68E1A1, 0xA238340074FED643, 0xB81AA804E48EA53C,
	0xAE8FEE9CF1F8C422, 0xCA56FBD5BA368F78, 0x2D135768B93B267F, 0x6B03BB85C94E3C31,
	0x99B8112D27336B6B, 0x511D853B84282470, 0xF762BDBF8B67D948, 0x8D6E6EBA242BB31A,
	0x905977BAE77E0222, 0x9D57BF730CED72D6, 0xB356B2371B0FBB26, 0x46EAA4C82D307D92,
	0x0219CC9E5FE2A6A7, 0x9F3C76F56146DA26, 0x338446C41BAA4BB6, 0xC8DD09CE61A9EFEF,
	0x82D615691B2A401D, 0xA4E9B93179C0AF87, 0x7668EA96527658E1, 0x0FF3283B86E161BE,
	0x30103D29DA92CFF2, 0xB9FCC6431B65CC05, 0xA363B94813E67EC3, 0x98CB9CC757DD88F3,
	0x2FF53956F8C874E3, 0x9B8BCDD28A2AAFC9, 0x03C731DF6092D5E4, 0x215CAFCA0407974F,
	0x2E987134A6DCBB03, 0x0D3A13676EC7256A, 0x01ACBDEB34B88618, 0xD450243CF1BF0F6E,
	0x8F8A14E98662AB4B, 0x880D84CC78CEE82A, 0x97DEFB71A67DD413, 0x8EAE3B71D0446CA0,
	0xDED746D6BF1F3EF2, 0xDA890A22DBFED29E, 0x9A7B15D1726CBDD2, 0x4A4C2C2B0ABC4D3F,
	0xA893B996CD8A837F, 0xBCEDF0097C4E4E6E, 0x9A3BF641A3C208D6, 0x3B0DF0562CC9883D,
	0xC158C3A1D5A4251F, 0x47106D1036968C03, 0x37010509ADC83862, 0x9CE834C740B51A4C,
	0xA69B2BE805FF9E30, 0x329F6A767C3E109A, 0x79ED37C39CB0C065, 0xB92CC166232CB86E,
	0x3AC798FB3395164C, 0x9ED002B4FEDDF3DC, 0xC9518DDBF8C34927, 0xF081CAB69BCDB59D,
	0x32CFE19988A2ED6E, 0x71F0F981F6F07D54, 0x0201BA3A4C292FD8, 0x39F18594999B0CF5,
	0xD9035E37CA5C9BFD, 0x11F19020A9EED3EB, 0x11EA538909A766C0, 0x1303548195FEA85A,
	0xAA8C0BF629EB2148, 0x45E4AEA1F99F29EB, 0x7A34A91422099AA8, 0xD913E3F1A73EFE36,
	0xEEAA5670ADB5B92F, 0x1A54C05E24487946, 0xEBB32127E0CC2572, 0x9898C48069D5D70A,
	0xE14EB6C33867013F, 0xB7BB5E3D4D230CF2, 0x952DAD77F16877D6, 0xC8F11674F9FC7DE7,
	0x46BC678F4E8C7A8F, 0xB4549A7A70FBD2D2, 0xD3F43D666CEC0C11, 0x4E209293FCB6098E,
	0xB2F5F739A3FED2DE, 0xFB8A04F85C95F091, 0x17B41356CD855781, 0xABCE86500E1F74B4,
	0xFA15C7AA07B00B7B, 0x82BD45ACA81794D0, 0x16A039DEA2B70B67, 0xCF5E9A30FE8400E3,
	0x1928B45F74E4265A, 0x5ABFF53A2C7548FB, 0x9F08F939C72474CA, 0x12E44D5FD7ADBE1E,
	0x3FBE827ABD8C1BAB, 0x720720D9CE5755AF, 0x1A2C1BE71E5B380F, 0x56B3065E62ACEEF9,
	0xB178F4513DC30B05, 0xB22870E29855DEE4, 0xE1C4CCE017A91556, 0x78A019FA2E226098,
	0x913BDDE0A8F7524E, 0x9C8939DCFB1A9000, 0xEA76B23046873104, 0x9557326FB77EAA7F,
	0x23AAD5405E081F4D, 0x805F67CC2FDEA063, 0x9E748AA8138A1D66, 0x7DB38CAB852A497B,
	0x1470A123425D128C, 0x3B67C1EE3A7A4644, 0x6F16476B55C1FF91, 0xCFDE93F935E9BCD3,
	0x83223DC8BCAC42D7, 0x2E127CF8CA0B9610, 0xE80DEA92E64D4E75, 0x77F10993D9BEC4FB,
	0x9AFEB9C40A0FDA22, 0x8CCBFB1D20FDDFC2, 0x41A23A8DD015EAE8, 0x0126419A7C0158A6,
}

